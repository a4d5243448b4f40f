package catalog

import "storefront-service/internal/models"

var defaultBrands = []models.Brand{
	{ID: "brand-01", Name: "Kawasaki", LogoURL: "https://cdn.pixabay.com/photo/2013/07/12/14/09/kawasaki-148239_960_720.png"},
	{ID: "brand-02", Name: "Ducati", LogoURL: "https://cdn.pixabay.com/photo/2013/07/12/12/30/ducati-145859_960_720.png"},
	{ID: "brand-03", Name: "Honda", LogoURL: "https://cdn.pixabay.com/photo/2013/07/12/12/30/honda-145857_960_720.png"},
	{ID: "brand-04", Name: "Yamaha", LogoURL: "https://cdn.pixabay.com/photo/2014/04/02/10/45/yamaha-304670_960_720.png"},
	{ID: "brand-05", Name: "BMW", LogoURL: "https://cdn.pixabay.com/photo/2013/07/12/15/33/bmw-150151_960_720.png"},
	{ID: "brand-06", Name: "KTM", LogoURL: "https://cdn.pixabay.com/photo/2013/07/12/14/09/ktm-148241_960_720.png"},
	{ID: "brand-07", Name: "Suzuki", LogoURL: "https://cdn.pixabay.com/photo/2017/03/05/21/43/suzuki-2120437_960_720.png"},
	{ID: "brand-08", Name: "TVS", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/a/a2/TVS_Motor_Company_Logo.svg/2560px-TVS_Motor_Company_Logo.svg.png"},
	{ID: "brand-09", Name: "Royal Enfield", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/e/eb/Royal_Enfield_logo.svg/2560px-Royal_Enfield_logo.svg.png"},
	{ID: "brand-10", Name: "Triumph", LogoURL: "https://upload.wikimedia.org/wikipedia/commons/thumb/9/9d/Triumph_Motorcycles_Ltd_logo.svg/2560px-Triumph_Motorcycles_Ltd_logo.svg.png"},
}

var defaultCategories = []models.Category{
	{ID: "category-01", Name: "Sport Bikes", Description: "High-performance bikes designed for speed and agility on the track."},
	{ID: "category-02", Name: "Cruiser Bikes", Description: "Comfortable bikes designed for long-distance riding on highways."},
	{ID: "category-03", Name: "Adventure Bikes", Description: "Versatile bikes designed for both on-road and off-road riding."},
	{ID: "category-04", Name: "Naked Bikes", Description: "Sport bikes without fairings for a more upright riding position."},
	{ID: "category-05", Name: "Touring Bikes", Description: "Bikes designed for long-distance travel with comfort features."},
	{ID: "category-06", Name: "Retro Bikes", Description: "Modern bikes with classic styling and vintage aesthetics."},
	{ID: "category-07", Name: "Off-Road Bikes", Description: "Bikes designed specifically for off-road riding and competitions."},
}

var modelNames = []string{
	"Fireblade", "Ninja", "Hayabusa", "Monster", "Scrambler", "SuperSport",
	"Streetfighter", "Dominar", "Apache", "Pulsar", "Duke", "RC",
	"Interceptor", "Continental GT", "Meteor", "Bullet", "RE", "Tiger",
	"Street Triple", "Speed Triple", "Daytona", "Rocket", "Thunderbird",
	"Z", "R", "CBR", "CB", "YZF-R", "MT", "GSX-R", "GSX-S", "V-Strom",
	"Versys", "Vulcan", "Intruder", "Boulevard", "FZ", "FZS", "R15",
	"S1000", "F850", "F750", "G310", "Diavel", "Panigale", "Multistrada",
	"Hypermotard", "SuperAdventure", "Adventure", "X-Pulse", "Xtreme",
}

var modelSuffixes = []string{
	"600", "650", "750", "900", "1000", "1100", "1200", "1250", "1300",
	"160", "200", "250", "300", "350", "390", "400", "500", "Sport",
	"Pro", "RS", "RR", "S", "R", "GT", "Adventure", "Touring", "Classic",
	"Urban", "Elite", "Premium", "Limited Edition", "Gold Line", "Black Edition",
}

// bikeTypeImages is indexed by category; later categories reuse the last set
var bikeTypeImages = [][]string{
	{ // sport
		"https://cdn.pixabay.com/photo/2019/10/12/07/53/motorcycles-4543638_960_720.jpg",
		"https://cdn.pixabay.com/photo/2015/07/13/15/56/motorbike-843286_960_720.jpg",
		"https://cdn.pixabay.com/photo/2015/09/09/21/35/motorcycle-933021_960_720.jpg",
	},
	{ // cruiser
		"https://cdn.pixabay.com/photo/2016/03/27/17/59/vintage-1283299_960_720.jpg",
		"https://cdn.pixabay.com/photo/2014/04/24/11/17/motorcycle-331403_960_720.jpg",
		"https://cdn.pixabay.com/photo/2015/09/05/07/49/motorcycle-924018_960_720.jpg",
	},
	{ // adventure
		"https://cdn.pixabay.com/photo/2019/09/03/08/28/motorcycle-4449535_960_720.jpg",
		"https://cdn.pixabay.com/photo/2019/08/05/00/53/motorcycle-4385252_960_720.jpg",
		"https://cdn.pixabay.com/photo/2015/09/18/22/20/motorcycle-946508_960_720.jpg",
	},
	{ // naked
		"https://cdn.pixabay.com/photo/2017/07/01/04/53/motorcycle-2460595_960_720.jpg",
		"https://cdn.pixabay.com/photo/2016/11/18/17/04/motorcycle-1835799_960_720.jpg",
		"https://cdn.pixabay.com/photo/2018/06/30/23/27/motorcycle-3508051_960_720.jpg",
	},
	{ // touring
		"https://cdn.pixabay.com/photo/2017/07/31/14/45/moto-2558321_960_720.jpg",
		"https://cdn.pixabay.com/photo/2018/03/01/13/41/motorcycle-3191111_960_720.jpg",
		"https://cdn.pixabay.com/photo/2018/04/23/11/21/motorcycle-3344331_960_720.jpg",
	},
}

var engineSizes = []string{
	"125cc", "150cc", "200cc", "250cc", "300cc", "400cc", "500cc",
	"650cc", "750cc", "900cc", "1000cc", "1100cc", "1200cc",
}

var additionalFeatures = []string{
	"Traction control system",
	"Quick shifter",
	"Multiple riding modes",
	"Bluetooth connectivity",
	"USD front forks",
	"Adjustable suspension",
	"Radial brake calipers",
	"Slipper clutch",
	"Navigation system",
	"Heated grips",
	"Cruise control",
	"Keyless ignition",
}

var reviewerNames = []string{
	"Rahul", "Priya", "Vikram", "Deepika", "Arjun",
	"Neha", "Rajesh", "Ananya", "Karan", "Meera",
}

// showcaseProducts are the hand-authored products at the head of the catalog.
// Only their reviews are generated.
func (g *Generator) showcaseProducts() []models.Product {
	return []models.Product{
		{
			ID:          "product-01",
			Name:        "Kawasaki Ninja ZX-10R",
			Slug:        "kawasaki-ninja-zx-10r",
			Description: "The Kawasaki Ninja ZX-10R is a supersport motorcycle designed for high-performance riding on tracks and streets.",
			Features: []string{
				"998cc liquid-cooled 4-stroke engine",
				"Electronic throttle valves with cruise control",
				"Showa Balance Free Front Fork (BFF)",
				"Kawasaki Quick Shifter (KQS)",
				"Öhlins electronic steering damper",
			},
			Price:    1599000,
			Discount: 5,
			Images: []models.Image{
				{ID: "img-01-01", URL: "https://cdn.pixabay.com/photo/2015/09/08/21/02/superbike-930715_960_720.jpg", Alt: "Kawasaki Ninja ZX-10R Front View"},
				{ID: "img-01-02", URL: "https://cdn.pixabay.com/photo/2018/01/24/18/05/motorcycle-3104364_960_720.jpg", Alt: "Kawasaki Ninja ZX-10R Side View"},
			},
			Brand:    defaultBrands[0],
			Category: defaultCategories[0],
			Specifications: models.Specifications{
				{Key: "Engine", Value: "998cc, liquid-cooled, 4-stroke"},
				{Key: "Power", Value: "203 PS @ 13,500 rpm"},
				{Key: "Torque", Value: "114.9 Nm @ 11,200 rpm"},
				{Key: "Transmission", Value: "6-speed"},
				{Key: "Weight", Value: "207 kg"},
				{Key: "Fuel Capacity", Value: "17 liters"},
			},
			StockCount: 8,
			Reviews:    g.reviews(5),
			IsFeatured: true,
		},
		{
			ID:          "product-02",
			Name:        "Ducati Panigale V4",
			Slug:        "ducati-panigale-v4",
			Description: "The Ducati Panigale V4 is the most powerful production bike from Ducati, derived directly from MotoGP experience.",
			Features: []string{
				"1,103 cc Desmosedici Stradale V4 engine",
				"Ducati Power Launch (DPL)",
				"Ducati Quick Shift (DQS) up/down",
				"Öhlins NIX-30 fork, TTX36 shock, and steering damper",
				"Brembo Stylema® monobloc calipers",
			},
			Price: 2695000,
			Images: []models.Image{
				{ID: "img-02-01", URL: "https://cdn.pixabay.com/photo/2018/10/26/22/55/motorcycle-3774533_960_720.jpg", Alt: "Ducati Panigale V4 Front View"},
				{ID: "img-02-02", URL: "https://cdn.pixabay.com/photo/2017/07/01/04/53/motorcycle-2460595_960_720.jpg", Alt: "Ducati Panigale V4 Side View"},
			},
			Brand:    defaultBrands[1],
			Category: defaultCategories[0],
			Specifications: models.Specifications{
				{Key: "Engine", Value: "1,103cc, Desmosedici Stradale V4"},
				{Key: "Power", Value: "214 PS @ 13,000 rpm"},
				{Key: "Torque", Value: "124 Nm @ 9,500 rpm"},
				{Key: "Transmission", Value: "6-speed"},
				{Key: "Weight", Value: "195 kg"},
				{Key: "Fuel Capacity", Value: "16 liters"},
			},
			StockCount: 5,
			Reviews:    g.reviews(7),
			IsFeatured: true,
		},
		{
			ID:          "product-03",
			Name:        "Royal Enfield Classic 350",
			Slug:        "royal-enfield-classic-350",
			Description: "The Royal Enfield Classic 350 is a modern classic motorcycle that combines vintage aesthetics with modern engineering.",
			Features: []string{
				"349cc air-cooled single-cylinder engine",
				"Classic post-war British styling",
				"Dual-channel ABS",
				"Comfortable riding position",
				"Timeless design with modern features",
			},
			Price:    193000,
			Discount: 2,
			Images: []models.Image{
				{ID: "img-03-01", URL: "https://cdn.pixabay.com/photo/2017/10/29/13/31/motorcycle-2899747_960_720.jpg", Alt: "Royal Enfield Classic 350 Front View"},
				{ID: "img-03-02", URL: "https://cdn.pixabay.com/photo/2019/07/16/08/44/royal-enfield-4341001_960_720.jpg", Alt: "Royal Enfield Classic 350 Side View"},
			},
			Brand:    defaultBrands[8],
			Category: defaultCategories[1],
			Specifications: models.Specifications{
				{Key: "Engine", Value: "349cc, air-cooled, single-cylinder"},
				{Key: "Power", Value: "20.2 PS @ 6,100 rpm"},
				{Key: "Torque", Value: "27 Nm @ 4,000 rpm"},
				{Key: "Transmission", Value: "5-speed"},
				{Key: "Weight", Value: "195 kg"},
				{Key: "Fuel Capacity", Value: "13 liters"},
			},
			StockCount: 25,
			Reviews:    g.reviews(12),
			IsFeatured: true,
		},
		{
			ID:          "product-04",
			Name:        "Triumph Bonneville Bobber",
			Slug:        "triumph-bonneville-bobber",
			Description: "The Triumph Bonneville Bobber combines classic 'bobber' style with modern performance and technology.",
			Features: []string{
				"1200cc liquid-cooled parallel-twin engine",
				"Unique floating aluminum seat pan",
				"Hidden monoshock rear suspension",
				"Ride-by-wire throttle with multiple riding modes",
				"LED lighting and ABS braking system",
			},
			Price: 1290000,
			Images: []models.Image{
				{ID: "img-04-01", URL: "https://cdn.pixabay.com/photo/2018/10/26/22/55/motorcycle-3774534_960_720.jpg", Alt: "Triumph Bonneville Bobber Front View"},
				{ID: "img-04-02", URL: "https://cdn.pixabay.com/photo/2018/04/25/18/08/motorcycle-3350257_960_720.jpg", Alt: "Triumph Bonneville Bobber Side View"},
			},
			Brand:    defaultBrands[9],
			Category: defaultCategories[1],
			Specifications: models.Specifications{
				{Key: "Engine", Value: "1,200cc, liquid-cooled, parallel-twin"},
				{Key: "Power", Value: "77 PS @ 6,100 rpm"},
				{Key: "Torque", Value: "106 Nm @ 4,000 rpm"},
				{Key: "Transmission", Value: "6-speed"},
				{Key: "Weight", Value: "228 kg"},
				{Key: "Fuel Capacity", Value: "12 liters"},
			},
			StockCount: 7,
			Reviews:    g.reviews(6),
		},
		{
			ID:          "product-05",
			Name:        "BMW R 1250 GS Adventure",
			Slug:        "bmw-r-1250-gs-adventure",
			Description: "The BMW R 1250 GS Adventure is the ultimate long-distance travel enduro that allows ambitious travelers to go beyond boundaries.",
			Features: []string{
				"1254cc boxer twin engine with ShiftCam Technology",
				"Adjustable windshield and seat height",
				"Dynamic ESA (Electronic Suspension Adjustment)",
				"Multiple riding modes with Hill Start Control",
				"LED adaptive headlight with daytime running light",
			},
			Price:    2150000,
			Discount: 3,
			Images: []models.Image{
				{ID: "img-05-01", URL: "https://cdn.pixabay.com/photo/2020/05/13/21/23/bmw-5169387_960_720.jpg", Alt: "BMW R 1250 GS Adventure Front View"},
				{ID: "img-05-02", URL: "https://cdn.pixabay.com/photo/2016/08/25/13/56/motorcycle-1619507_960_720.jpg", Alt: "BMW R 1250 GS Adventure Side View"},
			},
			Brand:    defaultBrands[4],
			Category: defaultCategories[2],
			Specifications: models.Specifications{
				{Key: "Engine", Value: "1,254cc, air/liquid-cooled, boxer twin"},
				{Key: "Power", Value: "136 PS @ 7,750 rpm"},
				{Key: "Torque", Value: "143 Nm @ 6,250 rpm"},
				{Key: "Transmission", Value: "6-speed"},
				{Key: "Weight", Value: "268 kg"},
				{Key: "Fuel Capacity", Value: "30 liters"},
			},
			StockCount: 4,
			Reviews:    g.reviews(9),
			IsFeatured: true,
		},
	}
}
