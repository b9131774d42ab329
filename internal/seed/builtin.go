package seed

import "github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"

const unsplash = "https://images.unsplash.com/"

// Builtin returns the two showcase projects the showroom ships with.
func Builtin() []models.Listing {
	return []models.Listing{
		{
			ID:             1,
			Title:          "Moderne Villa - Costa Blanca",
			Location:       "Denia, Valencia",
			Price:          485000,
			M2:             185,
			Bedrooms:       4,
			DeliveryDate:   "Q2 2026",
			ROI:            7.2,
			TotalUnits:     24,
			SoldUnits:      19,
			SalesStartDate: "2024-08-01",
			Exclusive:      true,
			Images: []string{
				unsplash + "photo-1613490493576-7fde63acd811?w=800&q=80",
				unsplash + "photo-1600596542815-ffad4c1539a9?w=800&q=80",
				unsplash + "photo-1600607687939-ce8a6c25118c?w=800&q=80",
			},
			Floorplans: []string{
				unsplash + "photo-1503387762-592deb58ef4e?w=800&q=80",
			},
			Description: "Luxe nieuwbouw villa met privé zwembad en zeezicht. Modern design met hoogwaardige afwerking.",
			Features:    []string{"Privé zwembad", "Zeezicht", "Airconditioning", "Ondergrondse parking"},
		},
		{
			ID:             2,
			Title:          "Penthouse Project - Marbella",
			Location:       "Marbella, Málaga",
			Price:          725000,
			M2:             145,
			Bedrooms:       3,
			DeliveryDate:   "Q4 2025",
			ROI:            8.5,
			TotalUnits:     16,
			SoldUnits:      13,
			SalesStartDate: "2024-06-15",
			Exclusive:      true,
			Images: []string{
				unsplash + "photo-1600607687644-c7171b42498f?w=800&q=80",
				unsplash + "photo-1600566753086-00f18fb6b3ea?w=800&q=80",
			},
			Floorplans: []string{
				unsplash + "photo-1509644851169-2acc08aa25b5?w=800&q=80",
			},
			Description: "Exclusief penthouse in prestigieus project nabij Puerto Banús. Luxe afwerking en prachtig dakterras.",
			Features:    []string{"Dakterras 60m²", "Zeezicht", "Conciërge service", "Fitnessruimte"},
		},
	}
}
