// Package fallback holds the static content shown when the backend cannot
// serve the public pages. The built-in copy can be overridden by a JSON
// document read from disk or S3.
package fallback

import "restaurant-site/internal/model"

// Content is the full set of static pages.
type Content struct {
	Menu    model.Menu
	Gallery model.Gallery
	About   model.AboutInfo
}

// Default returns the built-in content.
func Default() Content {
	return Content{
		Menu:    Menu(),
		Gallery: Gallery(),
		About:   About(),
	}
}

// Menu returns the static menu.
func Menu() model.Menu {
	return model.Menu{
		{Name: model.CategoryStarters, Items: []model.MenuItem{
			{Name: "Bruschetta", Description: "Fresh tomatoes, basil, olive oil, and toasted baguette slices", Price: 8.5, Category: model.CategoryStarters},
			{Name: "Caesar Salad", Description: "Crisp romaine with homemade Caesar dressing", Price: 9.0, Category: model.CategoryStarters},
		}},
		{Name: model.CategoryMainCourses, Items: []model.MenuItem{
			{Name: "Grilled Salmon", Description: "Served with lemon butter sauce and seasonal vegetables", Price: 22.0, Category: model.CategoryMainCourses},
			{Name: "Ribeye Steak", Description: "12 oz prime cut with garlic mashed potatoes", Price: 28.0, Category: model.CategoryMainCourses},
			{Name: "Vegetable Risotto", Description: "Creamy Arborio rice with wild mushrooms", Price: 18.0, Category: model.CategoryMainCourses},
		}},
		{Name: model.CategoryDesserts, Items: []model.MenuItem{
			{Name: "Tiramisu", Description: "Classic Italian dessert with mascarpone", Price: 7.5, Category: model.CategoryDesserts},
			{Name: "Cheesecake", Description: "Creamy cheesecake with berry compote", Price: 7.0, Category: model.CategoryDesserts},
		}},
		{Name: model.CategoryBeverages, Items: []model.MenuItem{
			{Name: "Red Wine (Glass)", Description: "A selection of Italian reds", Price: 10.0, Category: model.CategoryBeverages},
			{Name: "White Wine (Glass)", Description: "Crisp and refreshing", Price: 9.0, Category: model.CategoryBeverages},
			{Name: "Craft Beer", Description: "Local artisan brews", Price: 6.0, Category: model.CategoryBeverages},
			{Name: "Espresso", Description: "Strong and aromatic", Price: 3.0, Category: model.CategoryBeverages},
		}},
	}
}

// Gallery returns the static gallery page content.
func Gallery() model.Gallery {
	return model.Gallery{
		Images: []model.GalleryImage{
			{Title: "Café Fausse Interior", Description: "Café Fausse Interior", ImageURL: "/assets/gallery-cafe-interior.webp"},
			{Title: "Ribeye Steak Dish", Description: "Ribeye Steak Dish", ImageURL: "/assets/gallery-ribeye-steak.webp"},
			{Title: "Special Event at Café Fausse", Description: "Special Event at Café Fausse", ImageURL: "/assets/gallery-special-event.webp"},
			{Title: "Bar Area", Description: "Elegant bar area with craft cocktails", ImageURL: "/assets/gallery-bar-area.jpg"},
			{Title: "Private Dining Room", Description: "Intimate private dining experience", ImageURL: "/assets/gallery-private-dining.jpg"},
			{Title: "Seasonal Decorations", Description: "Beautiful seasonal restaurant ambiance", ImageURL: "/assets/gallery-seasonal-decor.jpg"},
		},
		Awards: []model.Award{
			{Title: "Culinary Excellence Award", Year: "2022"},
			{Title: "Restaurant of the Year", Year: "2023"},
			{Title: "Best Fine Dining Experience", Description: "Foodie Magazine, 2023"},
		},
		Reviews: []model.Review{
			{Content: "Exceptional ambiance and unforgettable flavors.", Author: "Gourmet Review"},
			{Content: "A must-visit restaurant for food enthusiasts.", Author: "The Daily Bite"},
		},
	}
}

// About returns the static about page copy.
func About() model.AboutInfo {
	return model.AboutInfo{
		History: "Founded in 2010 by Chef Antonio Rossi and restaurateur Maria Lopez, Café Fausse blends " +
			"traditional Italian flavors with modern culinary innovation. Our mission is to provide an " +
			"unforgettable dining experience that reflects both quality and creativity.",
		Founders: []model.Founder{
			{Name: "Chef Antonio Rossi", Description: "Culinary visionary with a passion for Italian cuisine and innovation."},
			{Name: "Maria Lopez", Description: "Renowned restaurateur dedicated to excellence and hospitality."},
		},
		Commitment: "We are committed to unforgettable dining, excellent food, and locally sourced ingredients.",
	}
}
