package main

import (
	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/logger"
	"github.com/cctvmart/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品
	products := []models.Product{
		{
			ProductID:   "CCTV-0001",
			Name:        "4MP Dome Security Camera",
			AltNames:    models.StringArray([]string{"Indoor Dome Cam", "IR Dome Camera"}),
			Description: "4MP indoor dome camera with infrared night vision up to 30m and wide dynamic range.",
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1557862921-37829c790f19?w=800",
			}),
			LabelledPrice: models.NewMoneyFromFloat(149.99),
			Price:         models.NewMoneyFromFloat(119.99),
			Stock:         40,
			IsAvailable:   true,
		},
		{
			ProductID:   "CCTV-0002",
			Name:        "8MP Bullet Camera (Outdoor)",
			AltNames:    models.StringArray([]string{"4K Bullet Cam", "Outdoor Bullet Camera"}),
			Description: "Weatherproof 8MP bullet camera with IP67 housing and motorized varifocal lens.",
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1617839625591-e5a789593135?w=800",
			}),
			LabelledPrice: models.NewMoneyFromFloat(259.99),
			Price:         models.NewMoneyFromFloat(219.99),
			Stock:         25,
			IsAvailable:   true,
		},
		{
			ProductID:   "CCTV-0003",
			Name:        "PTZ Speed Dome Camera",
			AltNames:    models.StringArray([]string{"Pan Tilt Zoom Camera"}),
			Description: "360-degree PTZ camera with 25x optical zoom and auto tracking.",
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1589935447067-5531094415d1?w=800",
			}),
			LabelledPrice: models.NewMoneyFromFloat(549.99),
			Price:         models.NewMoneyFromFloat(489.99),
			Stock:         10,
			IsAvailable:   true,
		},
		{
			ProductID:   "CCTV-0004",
			Name:        "8-Channel NVR with 2TB HDD",
			AltNames:    models.StringArray([]string{"Network Video Recorder"}),
			Description: "8-channel PoE network video recorder with pre-installed 2TB surveillance hard drive.",
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1558002038-1055907df827?w=800",
			}),
			LabelledPrice: models.NewMoneyFromFloat(429.99),
			Price:         models.NewMoneyFromFloat(379.99),
			Stock:         15,
			IsAvailable:   true,
		},
		{
			ProductID:   "CCTV-0005",
			Name:        "CAT6 Cable Roll (305m)",
			AltNames:    models.StringArray([]string{"Network Cable", "Ethernet Cable Box"}),
			Description: "Pure copper CAT6 UTP cable, 305 meter pull box for surveillance installations.",
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1544197150-b99a580bb7a8?w=800",
			}),
			LabelledPrice: models.NewMoneyFromFloat(119.99),
			Price:         models.NewMoneyFromFloat(94.99),
			Stock:         60,
			IsAvailable:   true,
		},
		{
			ProductID:   "CCTV-0006",
			Name:        "Discontinued Analog DVR",
			AltNames:    models.StringArray([]string{"Legacy DVR"}),
			Description: "Legacy 4-channel analog DVR, kept for repair reference only.",
			Images:      models.StringArray([]string{}),
			Price:       models.NewMoneyFromFloat(59.99),
			Stock:       0,
			IsAvailable: false,
		},
	}

	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("product_id = ?", p.ProductID).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.ProductID, err)
			} else {
				stdLog.Printf("Created product: %s (%s)", p.ProductID, p.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", p.ProductID)
		}
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("admin@cctvmart.local", "admin123"); err != nil {
		stdLog.Printf("Failed to create default admin: %v", err)
	} else {
		stdLog.Printf("Default admin ready: admin@cctvmart.local")
	}

	// 示例维修技师
	var tech models.Technician
	if err := models.DB.Where("email = ?", "tech@cctvmart.local").First(&tech).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("tech123"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Fatalf("Failed to hash technician password: %v", hashErr)
		}
		tech = models.Technician{
			FirstName:    "Sam",
			LastName:     "Perera",
			Email:        "tech@cctvmart.local",
			Phone:        "0771234567",
			PasswordHash: string(hash),
			IsActive:     true,
		}
		if err := models.DB.Create(&tech).Error; err != nil {
			stdLog.Printf("Failed to create technician: %v", err)
		} else {
			stdLog.Printf("Created technician: %s", tech.Email)
		}
	} else {
		stdLog.Printf("Technician already exists: %s", tech.Email)
	}

	stdLog.Printf("Seeding complete")
}
