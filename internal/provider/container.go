package provider

import (
	"github.com/cctvmart/internal/authz"
	"github.com/cctvmart/internal/config"
	"github.com/cctvmart/internal/queue"
	"github.com/cctvmart/internal/repository"
	"github.com/cctvmart/internal/service"

	"gorm.io/gorm"
)

// Container 依赖容器，集中装配仓储与服务
type Container struct {
	Cfg *config.Config
	DB  *gorm.DB

	UserRepo       repository.UserRepository
	OtpRepo        repository.OtpRepository
	ProductRepo    repository.ProductRepository
	CartRepo       repository.CartRepository
	OrderRepo      repository.OrderRepository
	ReviewRepo     repository.ReviewRepository
	RepairRepo     repository.RepairRepository
	EmployeeRepo   repository.EmployeeRepository
	SupplierRepo   repository.SupplierRepository
	TechnicianRepo repository.TechnicianRepository

	Tasks *queue.Client
	Authz *authz.Service

	UserService    *service.UserService
	ProductService *service.ProductService
	CartService    *service.CartService
	OrderService   *service.OrderService
	ReviewService  *service.ReviewService
	RepairService  *service.RepairService
	StaffService   *service.StaffService
	EmailService   *service.EmailService
	CaptchaService *service.CaptchaService
}

// NewContainer 装配依赖容器
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	c := &Container{Cfg: cfg, DB: db}

	c.UserRepo = repository.NewUserRepository(db)
	c.OtpRepo = repository.NewOtpRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.RepairRepo = repository.NewRepairRepository(db)
	c.EmployeeRepo = repository.NewEmployeeRepository(db)
	c.SupplierRepo = repository.NewSupplierRepository(db)
	c.TechnicianRepo = repository.NewTechnicianRepository(db)

	c.Tasks = queue.NewClient(cfg.Queue)

	authzService, err := authz.NewService(db)
	if err != nil {
		return nil, err
	}
	c.Authz = authzService

	c.UserService = service.NewUserService(c.UserRepo, c.OtpRepo, cfg.JWT, cfg.Security.PasswordPolicy, cfg.Security.OTP, c.Tasks)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(db, c.OrderRepo, c.ProductRepo, c.Tasks)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
	c.RepairService = service.NewRepairService(c.RepairRepo, c.TechnicianRepo, cfg.TechnicianJWT, c.Tasks)
	c.StaffService = service.NewStaffService(c.EmployeeRepo, c.SupplierRepo, c.TechnicianRepo)
	c.EmailService = service.NewEmailService(&cfg.Email)
	c.CaptchaService = service.NewCaptchaService(cfg.Captcha)

	return c, nil
}

// Close 释放容器资源
func (c *Container) Close() error {
	if c == nil || c.Tasks == nil {
		return nil
	}
	return c.Tasks.Close()
}
