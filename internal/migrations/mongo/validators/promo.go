package validators

import "go.mongodb.org/mongo-driver/bson"

var PromoValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"code",
			"discount_percent",
			"expiry_date",
			"is_active",
			"used_count",
			"usage_limit",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"code": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 32,
				"pattern":   "^[A-Z0-9_-]+$",
			},

			"discount_percent": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  100,
			},

			"expiry_date": bson.M{
				"bsonType": "date",
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"used_count": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"usage_limit": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
