package model

import "time"

type Property struct {
	ID            string    `json:"id"`
	LandlordID    string    `json:"landlord_id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Color         string    `json:"color"`
	Floors        int       `json:"floors"`
	UnitsPerFloor int       `json:"units_per_floor"`
	UnitType      string    `json:"unit_type"`
	DefaultRent   int64     `json:"default_rent"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	Conditions    string    `json:"conditions"`
	CreatedAt     time.Time `json:"created_at"`
}

type Unit struct {
	ID          string `json:"id"`
	PropertyID  string `json:"property_id"`
	LandlordID  string `json:"landlord_id"`
	Floor       int    `json:"floor"`
	UnitNo      string `json:"unit_no"`
	Type        string `json:"type"`
	IsVacant    bool   `json:"is_vacant"`
	DefaultRent int64  `json:"default_rent"`
	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
	Conditions  string `json:"conditions"`
}
