package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrendingItem is a trending destination shown on the marketing site. Items
// are created whole by the add endpoint and deleted by name; they are never
// updated in place.
type TrendingItem struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Subname     string             `json:"subname" bson:"subname"`
	Description string             `json:"description" bson:"description"`

	Image    string  `json:"image" bson:"image"`
	Image1   *string `json:"image1" bson:"image1"`
	Image2   *string `json:"image2" bson:"image2"`
	Image3   *string `json:"image3" bson:"image3"`
	Image4   *string `json:"image4" bson:"image4"`
	Image5   *string `json:"image5" bson:"image5"`
	Image6   *string `json:"image6" bson:"image6"`
	VideoURL *string `json:"videoUrl" bson:"videoUrl"`

	Location        string   `json:"location,omitempty" bson:"location,omitempty"`
	Highlights      string   `json:"highlights,omitempty" bson:"highlights,omitempty"`
	Address         string   `json:"address,omitempty" bson:"address,omitempty"`
	Contact         string   `json:"contact,omitempty" bson:"contact,omitempty"`
	AvailableThings []string `json:"availableThings" bson:"availableThings"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
}
