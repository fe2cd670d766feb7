package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	ProfileCollection   *mongo.Collection
	ItineraryCollection *mongo.Collection
	HotspotsCollection  *mongo.Collection
	BookingsCollection  *mongo.Collection
	HostAppsCollection  *mongo.Collection
	ReviewsCollection   *mongo.Collection
	CountersCollection  *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("tripandtreat")
	UserCollection = database.Collection("users")
	ProfileCollection = database.Collection("profiles")
	ItineraryCollection = database.Collection("itineraries")
	HotspotsCollection = database.Collection("hotspots")
	BookingsCollection = database.Collection("bookings")
	HostAppsCollection = database.Collection("hostapps")
	ReviewsCollection = database.Collection("reviews")
	CountersCollection = database.Collection("counters")
}
