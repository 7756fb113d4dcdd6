package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"appointment_date",
			"service",
			"email",
			"slot",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"appointment_date": bson.M{
				"bsonType":  "string",
				"minLength": 4,
				"maxLength": 40,
			},

			"service": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"slot": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 40,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
