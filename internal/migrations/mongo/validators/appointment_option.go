package validators

import "go.mongodb.org/mongo-driver/bson"

var AppointmentOptionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"slots",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"slots": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"maxItems": 100,
				"items": bson.M{
					"bsonType":  "string",
					"minLength": 2,
					"maxLength": 40,
				},
			},
		},
	},
}
