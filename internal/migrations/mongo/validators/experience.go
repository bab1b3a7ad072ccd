package validators

import "go.mongodb.org/mongo-driver/bson"

var ExperienceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"title",
			"description",
			"price",
			"slots",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"price": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"image": bson.M{
				"bsonType": "string",
			},

			"slots": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"date", "timings"},
					"properties": bson.M{
						"date": bson.M{
							"bsonType": "string",
							"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
						},
						"timings": bson.M{
							"bsonType": "array",
							"items": bson.M{
								"bsonType": "object",
								"required": []string{"start_time", "end_time"},
								"properties": bson.M{
									"start_time": bson.M{"bsonType": "string"},
									"end_time":   bson.M{"bsonType": "string"},
								},
							},
						},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
