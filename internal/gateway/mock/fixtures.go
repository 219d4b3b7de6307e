package mock

import "github.com/martin/listing-hunter/internal/types"

// Fixture listings for development. Prices are monthly rents in CZK.
var propertyFixtures = []types.Listing{
	{
		Kind:         types.KindProperty,
		Title:        "1+1 Studio, Pod kaštany",
		Location:     "Pod kaštany, Praha 6 - Dejvice",
		Link:         "https://example.com/property/123",
		Price:        23400,
		PriceRaw:     "23400",
		PropertyType: "1+1 Studio",
		SizeM2:       50,
		Bedrooms:     1,
	},
	{
		Kind:         types.KindProperty,
		Title:        "1+KK Studio, Malešická",
		Location:     "Malešická, Praha 3 - Žižkov",
		Link:         "https://example.com/property/124",
		Price:        18900,
		PriceRaw:     "18900",
		PropertyType: "1+KK Studio",
		SizeM2:       40,
		Bedrooms:     1,
	},
	{
		Kind:         types.KindProperty,
		Title:        "2+1 Apartment, Vinohradská",
		Location:     "Vinohradská, Praha 2 - Vinohrady",
		Link:         "https://example.com/property/125",
		Price:        28500,
		PriceRaw:     "28500",
		PropertyType: "2+1 Apartment",
		SizeM2:       65,
		Bedrooms:     2,
		Amenities:    []string{"balcony", "cellar"},
	},
	{
		Kind:         types.KindProperty,
		Title:        "2+1 Apartment, Anděl",
		Location:     "Anděl, Praha 5 - Smíchov",
		Link:         "https://example.com/property/126",
		Price:        32000,
		PriceRaw:     "32000",
		PropertyType: "2+1 Apartment",
		SizeM2:       70,
		Bedrooms:     2,
		Amenities:    []string{"parking"},
	},
	{
		Kind:         types.KindProperty,
		Title:        "1+1 Studio, Žižkov",
		Location:     "Žižkov, Praha 3 - Žižkov",
		Link:         "https://example.com/property/127",
		Price:        19500,
		PriceRaw:     "19500",
		PropertyType: "1+1 Studio",
		SizeM2:       35,
		Bedrooms:     1,
	},
}

var jobFixtures = []types.Listing{
	{
		Kind:        types.KindJob,
		Title:       "Software Engineer",
		Company:     "TechCorp",
		Location:    "Prague, Czech Republic",
		Link:        "https://example.com/job/123",
		Salary:      "80000 CZK/month",
		Price:       80000,
		Description: "Full-stack development with Python and React",
		Tags:        []string{"software engineer", "backend", "python"},
	},
	{
		Kind:        types.KindJob,
		Title:       "Data Scientist",
		Company:     "DataAnalytics Inc",
		Location:    "Prague, Czech Republic",
		Link:        "https://example.com/job/124",
		Salary:      "90000 CZK/month",
		Price:       90000,
		Description: "Machine learning and data analysis",
		Tags:        []string{"data scientist", "machine learning", "sql"},
	},
	{
		Kind:        types.KindJob,
		Title:       "Product Manager",
		Company:     "StartupXYZ",
		Location:    "Prague, Czech Republic",
		Link:        "https://example.com/job/125",
		Salary:      "75000 CZK/month",
		Price:       75000,
		Description: "Product strategy and roadmap management",
		Tags:        []string{"product", "management"},
	},
	{
		Kind:        types.KindJob,
		Title:       "DevOps Engineer",
		Company:     "CloudTech",
		Location:    "Prague, Czech Republic",
		Link:        "https://example.com/job/126",
		Salary:      "85000 CZK/month",
		Price:       85000,
		Description: "Infrastructure and deployment automation",
		Tags:        []string{"devops", "gcp", "kubernetes"},
	},
	{
		Kind:        types.KindJob,
		Title:       "Frontend Developer",
		Company:     "WebSolutions",
		Location:    "Prague, Czech Republic",
		Link:        "https://example.com/job/127",
		Salary:      "70000 CZK/month",
		Price:       70000,
		Description: "React and Vue.js development",
		Tags:        []string{"frontend", "react", "remote"},
	},
}
