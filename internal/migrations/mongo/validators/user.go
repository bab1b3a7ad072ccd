package validators

import "go.mongodb.org/mongo-driver/bson"

// UserValidator and AdminValidator share a shape: both collections store
// name, email, and a bcrypt hash.
var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"password",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  "^[^@\\s]+@[^@\\s]+\\.[^@\\s]+$",
			},

			"password": bson.M{
				"bsonType":  "string",
				"minLength": 20,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var AdminValidator = UserValidator
