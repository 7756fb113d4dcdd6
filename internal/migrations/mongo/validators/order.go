package validators

import "go.mongodb.org/mongo-driver/bson"

var OrderValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"email",
			"orderInfo",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"orderInfo": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"maxItems": 100,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"product_id", "name", "price", "quantity"},
					"properties": bson.M{
						"line_id": bson.M{
							"bsonType": "string",
						},
						"product_id": bson.M{
							"bsonType":  "string",
							"minLength": 24,
							"maxLength": 24,
						},
						"name": bson.M{
							"bsonType":  "string",
							"minLength": 2,
							"maxLength": 200,
						},
						"price": bson.M{
							"bsonType": []string{"double", "int", "long"},
							"minimum":  0,
						},
						"quantity": bson.M{
							"bsonType": "int",
							"minimum":  1,
							"maximum":  1000,
						},
						"status": bson.M{
							"bsonType": "string",
						},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
