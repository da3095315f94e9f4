package mock

import (
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/content"
	"github.com/maxwelladwale/coltech/internal/domain/installation"
	"github.com/maxwelladwale/coltech/internal/domain/licensing"
	"github.com/shopspring/decimal"
)

func kes(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

func qty(n int) *int {
	return &n
}

func rating(r float64) *float64 {
	return &r
}

func seedMDVRs() []catalog.MDVRProduct {
	return []catalog.MDVRProduct{
		{
			Product: catalog.Product{
				ID:               "mdvr-4ch-ai",
				Name:             "MDVR 4-Channel AI",
				Category:         catalog.CategoryMDVR,
				Description:      "Advanced 4-channel AI-enabled MDVR with ADAS and DMS alerts",
				ShortDescription: "4 channels, ADAS/DMS, 4G + GPS",
				Price:            kes(45000),
				ImageURL:         "/images/mdvr-4ch.jpg",
				Specifications:   map[string]any{"video": "1080p", "connectivity": "4G/GPS", "storage_max": "2TB"},
				InStock:          true,
				StockQuantity:    qty(10),
			},
			IncludesFreeLicense:   true,
			LicenseType:           catalog.LicenseTypeAI,
			LicenseDurationMonths: 12,
			Channels:              4,
			StorageOptions:        []catalog.StorageOption{catalog.StorageHDD, catalog.StorageSDCard},
			Features:              []string{"GPS", "ADAS", "DMS", "Real-time alerts"},
		},
		{
			Product: catalog.Product{
				ID:               "mdvr-4ch-basic",
				Name:             "MDVR 4-Channel Basic",
				Category:         catalog.CategoryMDVR,
				Description:      "Reliable 4-channel MDVR for fleet recording and tracking",
				ShortDescription: "4 channels, 4G + GPS",
				Price:            kes(32000),
				ImageURL:         "/images/mdvr-4ch-basic.jpg",
				Specifications:   map[string]any{"video": "720p", "connectivity": "4G/GPS", "storage_max": "256GB"},
				InStock:          true,
				StockQuantity:    qty(15),
			},
			IncludesFreeLicense:   true,
			LicenseType:           catalog.LicenseTypeNonAI,
			LicenseDurationMonths: 12,
			Channels:              4,
			StorageOptions:        []catalog.StorageOption{catalog.StorageSDCard},
			Features:              []string{"GPS", "Live view", "Geofencing"},
		},
		{
			Product: catalog.Product{
				ID:               "mdvr-8ch-ai",
				Name:             "MDVR 8-Channel AI",
				Category:         catalog.CategoryMDVR,
				Description:      "8-channel AI MDVR for buses and long-haul trucks",
				ShortDescription: "8 channels, ADAS/DMS, HDD",
				Price:            kes(78000),
				ImageURL:         "/images/mdvr-8ch.jpg",
				Specifications:   map[string]any{"video": "1080p", "connectivity": "4G/GPS/WiFi", "storage_max": "4TB"},
				InStock:          true,
				StockQuantity:    qty(4),
			},
			IncludesFreeLicense:   true,
			LicenseType:           catalog.LicenseTypeAI,
			LicenseDurationMonths: 12,
			Channels:              8,
			StorageOptions:        []catalog.StorageOption{catalog.StorageHDD},
			Features:              []string{"GPS", "ADAS", "DMS", "Passenger counting", "Real-time alerts"},
		},
	}
}

func seedCameras() []catalog.Camera {
	return []catalog.Camera{
		{
			Product: catalog.Product{
				ID:            "cam-hd-1080p",
				Name:          "HD Camera 1080p",
				Category:      catalog.CategoryCamera,
				Description:   "High-definition surveillance camera for cabin or exterior mounting",
				Price:         kes(5000),
				ImageURL:      "/images/cam-hd.jpg",
				InStock:       true,
				StockQuantity: qty(50),
			},
			Channels:       1,
			StorageOptions: []catalog.StorageOption{catalog.StorageHDD, catalog.StorageSDCard},
			Features:       []string{"1080p", "Wide angle"},
		},
		{
			Product: catalog.Product{
				ID:            "cam-ir-night",
				Name:          "Infrared Night Vision Camera",
				Category:      catalog.CategoryCamera,
				Description:   "IR camera with night vision up to 15 metres",
				Price:         kes(6500),
				ImageURL:      "/images/cam-ir.jpg",
				InStock:       true,
				StockQuantity: qty(30),
			},
			Channels:       1,
			StorageOptions: []catalog.StorageOption{catalog.StorageHDD, catalog.StorageSDCard},
			Features:       []string{"Night vision", "Waterproof"},
		},
		{
			Product: catalog.Product{
				ID:            "cam-adas",
				Name:          "ADAS Front Camera",
				Category:      catalog.CategoryCamera,
				Description:   "Forward-facing camera for lane departure and collision warnings",
				Price:         kes(9500),
				ImageURL:      "/images/cam-adas.jpg",
				InStock:       true,
				StockQuantity: qty(12),
			},
			Channels:       1,
			StorageOptions: []catalog.StorageOption{catalog.StorageHDD},
			Features:       []string{"ADAS", "Lane departure", "Forward collision"},
		},
		{
			Product: catalog.Product{
				ID:            "cam-dms",
				Name:          "DMS Driver Camera",
				Category:      catalog.CategoryCamera,
				Description:   "Driver monitoring camera detecting fatigue and distraction",
				Price:         kes(9500),
				ImageURL:      "/images/cam-dms.jpg",
				InStock:       false,
				StockQuantity: qty(0),
			},
			Channels:       1,
			StorageOptions: []catalog.StorageOption{catalog.StorageHDD},
			Features:       []string{"DMS", "Fatigue detection", "Phone use detection"},
		},
	}
}

func seedLicenses() []catalog.LicenseProduct {
	return []catalog.LicenseProduct{
		{
			Product: catalog.Product{
				ID:          "lic-ai-12",
				Name:        "AI Platform License (12 months)",
				Category:    catalog.CategoryLicense,
				Description: "Annual platform license for AI MDVRs including ADAS/DMS analytics",
				Price:       kes(AIRenewalPrice),
				InStock:     true,
			},
			LicenseType:        catalog.LicenseTypeAI,
			DurationMonths:     12,
			AnnualRenewalPrice: kes(AIRenewalPrice),
			IsRenewal:          true,
		},
		{
			Product: catalog.Product{
				ID:          "lic-basic-12",
				Name:        "Basic Platform License (12 months)",
				Category:    catalog.CategoryLicense,
				Description: "Annual platform license for tracking and live view",
				Price:       kes(NonAIRenewalPrice),
				InStock:     true,
			},
			LicenseType:        catalog.LicenseTypeNonAI,
			DurationMonths:     12,
			AnnualRenewalPrice: kes(NonAIRenewalPrice),
			IsRenewal:          true,
		},
	}
}

func seedAccessories() []catalog.Product {
	return []catalog.Product{
		{ID: "cable-ext-5m", Name: "5m Camera Extension Cable", Category: catalog.CategoryCable,
			Description: "Aviation connector extension cable", Price: kes(800), InStock: true, StockQuantity: qty(200)},
		{ID: "cable-power", Name: "MDVR Power Harness", Category: catalog.CategoryCable,
			Description: "Fused 12/24V power harness with ignition sense", Price: kes(1200), InStock: true, StockQuantity: qty(100)},
		{ID: "acc-gps-antenna", Name: "GPS Antenna", Category: catalog.CategoryAccessory,
			Description: "Magnetic external GPS antenna", Price: kes(1500), InStock: true, StockQuantity: qty(80)},
		{ID: "acc-sd-128", Name: "128GB SD Card", Category: catalog.CategoryAccessory,
			Description: "Industrial grade SD card for continuous recording", Price: kes(2500), InStock: true, StockQuantity: qty(60)},
		{ID: "acc-hdd-1tb", Name: "1TB Surveillance HDD", Category: catalog.CategoryAccessory,
			Description: "Shock-mounted 1TB hard drive", Price: kes(7500), InStock: true, StockQuantity: qty(20)},
		{ID: "inst-technician", Name: "Technician Installation", Category: catalog.CategoryInstallation,
			Description: "Professional installation at a partner garage", Price: kes(3500), InStock: true},
	}
}

type packageSeed struct {
	id, name, description, recommendedFor string
	discounted                            int64
	items                                 []catalog.PackageItem
}

func seedPackages() []packageSeed {
	return []packageSeed{
		{
			id: "pkg-matatu-safety", name: "Matatu Safety Package",
			description:    "AI MDVR with forward ADAS and two cabin cameras",
			recommendedFor: "PSV matatus and shuttles",
			discounted:     62000,
			items: []catalog.PackageItem{
				{ProductID: "mdvr-4ch-ai", Quantity: 1},
				{ProductID: "cam-adas", Quantity: 1},
				{ProductID: "cam-hd-1080p", Quantity: 2},
				{ProductID: "cable-ext-5m", Quantity: 2},
			},
		},
		{
			id: "pkg-fleet-basic", name: "Fleet Tracking Starter",
			description:    "Basic MDVR with four HD cameras",
			recommendedFor: "Delivery vans and small fleets",
			discounted:     52000,
			items: []catalog.PackageItem{
				{ProductID: "mdvr-4ch-basic", Quantity: 1},
				{ProductID: "cam-hd-1080p", Quantity: 4},
				{ProductID: "cable-ext-5m", Quantity: 4},
			},
		},
		{
			id: "pkg-truck-pro", name: "Long-Haul Truck Pro",
			description:    "8-channel AI MDVR with night vision coverage and HDD storage",
			recommendedFor: "Trucks and buses",
			discounted:     124500,
			items: []catalog.PackageItem{
				{ProductID: "mdvr-8ch-ai", Quantity: 1},
				{ProductID: "cam-ir-night", Quantity: 4},
				{ProductID: "cam-adas", Quantity: 1},
				{ProductID: "cam-hd-1080p", Quantity: 2},
				{ProductID: "acc-hdd-1tb", Quantity: 1},
			},
		},
	}
}

func seedGarages() []installation.PartnerGarage {
	return []installation.PartnerGarage{
		{ID: "garage-nbi-1", Name: "Industrial Area Auto Electricals", Location: "Enterprise Road, Industrial Area",
			County: "Nairobi", Phone: "+254711000101", Email: "bookings@iaelectricals.co.ke", Rating: rating(4.7)},
		{ID: "garage-nbi-2", Name: "Westlands Fleet Care", Location: "Waiyaki Way, Westlands",
			County: "Nairobi", Phone: "+254711000102", Email: "service@westlandsfleet.co.ke", Rating: rating(4.4)},
		{ID: "garage-msa-1", Name: "Changamwe Truck Centre", Location: "Port Reitz Road, Changamwe",
			County: "Mombasa", Phone: "+254711000201", Rating: rating(4.5)},
		{ID: "garage-ksm-1", Name: "Lakeside Motors", Location: "Obote Road",
			County: "Kisumu", Phone: "+254711000301", Email: "info@lakesidemotors.co.ke", Rating: rating(4.2)},
		{ID: "garage-nku-1", Name: "Rift Valley Auto Tech", Location: "Kenyatta Avenue",
			County: "Nakuru", Phone: "+254711000401"},
	}
}

func seedCertificates(now time.Time) []licensing.Certificate {
	expiry := now.AddDate(1, 0, 0)
	return []licensing.Certificate{
		{
			ID:                "cert-demo-install",
			CertificateNumber: "CERT-INS-20250110-0001",
			Type:              licensing.CertificateInstallation,
			QRCode:            "COLTECH-CERT:CERT-INS-20250110-0001",
			IssuedTo:          "Demo Fleet Ltd",
			IssuedDate:        now.AddDate(0, -2, 0),
			Details:           map[string]any{"vehicleRegistration": "KDA 123A", "garage": "Industrial Area Auto Electricals"},
		},
		{
			ID:                "cert-demo-license",
			CertificateNumber: "CERT-LIC-20250110-0002",
			Type:              licensing.CertificateLicense,
			QRCode:            "COLTECH-CERT:CERT-LIC-20250110-0002",
			IssuedTo:          "Demo Fleet Ltd",
			IssuedDate:        now.AddDate(0, -2, 0),
			ExpiryDate:        &expiry,
			Details:           map[string]any{"vehicleRegistration": "KDA 123A", "licenseType": "ai"},
		},
	}
}

func seedPosts(now time.Time) []content.BlogPost {
	return []content.BlogPost{
		{
			ID: "post-1", Slug: "ntsa-mdvr-requirements",
			Title:         "What the NTSA MDVR requirements mean for PSV operators",
			Excerpt:       "A plain guide to recording, retention and speed governor integration.",
			Content:       "Public service vehicles must record cabin and road footage and keep it available for inspection...",
			FeaturedImage: "/images/blog/ntsa.jpg",
			Author:        "COLTECH Team",
			PublishedAt:   now.AddDate(0, 0, -30),
			Tags:          []string{"compliance", "psv"},
		},
		{
			ID: "post-2", Slug: "adas-vs-dms",
			Title:         "ADAS vs DMS: which AI features does your fleet need?",
			Excerpt:       "Forward collision warnings and driver fatigue alerts solve different problems.",
			Content:       "ADAS watches the road while DMS watches the driver...",
			FeaturedImage: "/images/blog/adas-dms.jpg",
			Author:        "COLTECH Team",
			PublishedAt:   now.AddDate(0, 0, -14),
			Tags:          []string{"ai", "safety"},
		},
		{
			ID: "post-3", Slug: "choosing-mdvr-storage",
			Title:         "HDD or SD card? Choosing storage for your MDVR",
			Excerpt:       "Retention, vibration and cost trade-offs for vehicle recording.",
			Content:       "SD cards survive vibration well but hold fewer days of footage...",
			FeaturedImage: "/images/blog/storage.jpg",
			Author:        "COLTECH Team",
			PublishedAt:   now.AddDate(0, 0, -3),
			Tags:          []string{"hardware", "guides"},
		},
	}
}
