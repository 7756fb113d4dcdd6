package validators

import "go.mongodb.org/mongo-driver/bson"

var ProductValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"category",
			"price",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"category": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			// Legacy documents may still carry string prices until the
			// normalization pass has run.
			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal", "string"},
			},

			"discount": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
				"maximum":  100,
			},

			"image": bson.M{
				"bsonType":  "string",
				"maxLength": 2048,
			},

			"rating": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
				"maximum":  5,
			},

			"trending": bson.M{
				"bsonType": "bool",
			},

			"promoted": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
