package mongo

import "go.mongodb.org/mongo-driver/bson"

var integer = []string{"int", "long"}

var RoomTypeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name", "capacity"},
		"properties": bson.M{
			"_id":      bson.M{"bsonType": integer, "minimum": 1},
			"name":     bson.M{"bsonType": "string", "minLength": 1, "maxLength": 50},
			"capacity": bson.M{"bsonType": integer, "minimum": 1},
		},
	},
}

var HotelValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "name"},
		"properties": bson.M{
			"_id":  bson.M{"bsonType": integer, "minimum": 1},
			"name": bson.M{"bsonType": "string", "minLength": 1, "maxLength": 100},
		},
	},
}

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "hotel_id", "room_type_id"},
		"properties": bson.M{
			"_id":          bson.M{"bsonType": integer, "minimum": 1},
			"hotel_id":     bson.M{"bsonType": integer, "minimum": 1},
			"room_type_id": bson.M{"bsonType": integer, "minimum": 1},
			"booking_seq":  bson.M{"bsonType": integer, "minimum": 0},
		},
	},
}

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"hotel_id",
			"room_id",
			"reference",
			"check_in",
			"check_out",
			"number_of_guests",
			"created_at",
		},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":      bson.M{"bsonType": integer, "minimum": 1},
			"hotel_id": bson.M{"bsonType": integer, "minimum": 1},
			"room_id":  bson.M{"bsonType": integer, "minimum": 1},
			"reference": bson.M{
				"bsonType": "string",
				"pattern":  `^[0-9]{14}-[0-9]{3,}$`,
			},
			"check_in":         bson.M{"bsonType": "date"},
			"check_out":        bson.M{"bsonType": "date"},
			"number_of_guests": bson.M{"bsonType": integer, "minimum": 1},
			"created_at":       bson.M{"bsonType": "date"},
		},
	},
	// $expr keeps check_out strictly after check_in.
	"$expr": bson.M{"$gt": bson.A{"$check_out", "$check_in"}},
}

var RoomLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "room_id", "owner", "expires_at", "created_at"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string", "pattern": `^room_lock_[0-9]+$`},
			"room_id":    bson.M{"bsonType": integer, "minimum": 1},
			"owner":      bson.M{"bsonType": "string", "minLength": 1},
			"expires_at": bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
