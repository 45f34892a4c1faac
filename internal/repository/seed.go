package repository

import (
	"time"

	"github.com/lib/pq"

	"github.com/ignatzorin/seeforge-backend/internal/models"
)

// DemoTemplates возвращает каталог демо режима в фиксированном порядке.
func DemoTemplates() []models.Template {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return []models.Template{
		{
			ID:                 "1",
			Name:               "E-commerce Starter",
			Description:        "Complete e-commerce platform with product catalog, cart, and checkout",
			Category:           "ecommerce",
			PreviewImage:       "https://images.unsplash.com/photo-1557821552-17105176677c?w=800",
			Features:           pq.StringArray{"Product Management", "Shopping Cart", "Payment Integration", "Admin Dashboard"},
			TechStack:          models.StringMap{"frontend": "React + Tailwind", "backend": "Node.js + MongoDB"},
			EstimatedBuildTime: "2-3 weeks",
			BasePrice:          6000,
			CreatedAt:          now,
		},
		{
			ID:                 "2",
			Name:               "SaaS Dashboard",
			Description:        "Modern SaaS dashboard with user management and analytics",
			Category:           "saas",
			PreviewImage:       "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800",
			Features:           pq.StringArray{"User Auth", "Analytics Dashboard", "Subscription Management", "API Integration"},
			TechStack:          models.StringMap{"frontend": "Next.js", "backend": "Supabase"},
			EstimatedBuildTime: "2 weeks",
			BasePrice:          8000,
			CreatedAt:          now,
		},
		{
			ID:                 "3",
			Name:               "Marketplace Platform",
			Description:        "Multi-vendor marketplace with seller and buyer interfaces",
			Category:           "marketplace",
			PreviewImage:       "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800",
			Features:           pq.StringArray{"Vendor Dashboard", "Product Listings", "Order Management", "Reviews & Ratings"},
			TechStack:          models.StringMap{"frontend": "React + Redux", "backend": "FastAPI + PostgreSQL"},
			EstimatedBuildTime: "3-4 weeks",
			BasePrice:          12000,
			CreatedAt:          now,
		},
		{
			ID:                 "4",
			Name:               "Portfolio Website",
			Description:        "Stunning portfolio website for creators and professionals",
			Category:           "portfolio",
			PreviewImage:       "https://images.unsplash.com/photo-1467232004584-a241de8bcf5d?w=800",
			Features:           pq.StringArray{"Project Showcase", "Blog", "Contact Form", "Admin Panel"},
			TechStack:          models.StringMap{"frontend": "Next.js", "backend": "Contentful CMS"},
			EstimatedBuildTime: "1 week",
			BasePrice:          3000,
			CreatedAt:          now,
		},
	}
}
