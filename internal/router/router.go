package router

import (
	"github.com/cctvmart/internal/http/handlers/admin"
	"github.com/cctvmart/internal/http/handlers/public"
	"github.com/cctvmart/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New 构建路由
func New(c *provider.Container, log *zap.Logger) *gin.Engine {
	gin.SetMode(resolveGinMode(c.Cfg.Server.Mode))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(c.Cfg.CORS))

	pub := public.NewHandler(c)
	adm := admin.NewHandler(c)

	userAuth := UserAuthMiddleware(c.Cfg.JWT.SecretKey, c.UserRepo)
	optionalAuth := OptionalUserAuthMiddleware(c.Cfg.JWT.SecretKey, c.UserRepo)
	adminOnly := []gin.HandlerFunc{
		userAuth,
		AdminRequiredMiddleware(),
		AdminRBACMiddleware(c.Authz),
	}
	techAuth := TechnicianAuthMiddleware(c.Cfg.TechnicianJWT.SecretKey)
	loginLimit := LoginRateLimitMiddleware(c.Cfg.Security.LoginRateLimit)

	api := r.Group("/api")

	// 开放接口
	api.GET("/captcha", pub.CaptchaChallenge)
	api.POST("/users", pub.Register)
	api.POST("/users/login", loginLimit, pub.Login)
	api.POST("/users/send-otp", loginLimit, pub.SendOTP)
	api.POST("/users/reset-password", pub.ResetPassword)
	api.POST("/technicians/login", loginLimit, pub.TechnicianLogin)
	api.GET("/products", optionalAuth, pub.ListProducts)
	api.GET("/products/:productId", pub.GetProduct)
	api.GET("/reviews", optionalAuth, pub.ListReviews)
	api.GET("/repairs/serial/:serialNo", pub.GetRepairBySerial)

	// 登录用户接口
	authed := api.Group("", userAuth)
	{
		authed.GET("/users/me", pub.Me)
		authed.GET("/cart", pub.GetCart)
		authed.POST("/cart", pub.AddToCart)
		authed.DELETE("/cart", pub.ClearCart)
		authed.POST("/orders", pub.CreateOrder)
		authed.GET("/orders/:page/:limit", pub.ListOrders)
		authed.POST("/reviews", pub.CreateReview)
	}

	// 技师门户接口
	portal := api.Group("/portal", techAuth)
	{
		portal.GET("/repairs", pub.ListAssignedRepairs)
		portal.PUT("/repairs/:id", pub.UpdateAssignedRepair)
	}

	// 后台管理接口
	adminGrp := api.Group("", adminOnly...)
	{
		adminGrp.GET("/users/admins", adm.ListAdmins)
		adminGrp.GET("/users/customers", adm.ListCustomers)
		adminGrp.POST("/users/create-admin", adm.CreateAdmin)
		adminGrp.PUT("/users/admins/:id", adm.UpdateAdmin)
		adminGrp.DELETE("/users/admins/:id", adm.DeleteAdmin)
		adminGrp.PUT("/users/block/:id", adm.SetUserBlocked)

		adminGrp.POST("/products", adm.CreateProduct)
		adminGrp.PUT("/products/:productId", adm.UpdateProduct)
		adminGrp.DELETE("/products/:productId", adm.DeleteProduct)

		adminGrp.PUT("/orders/:orderId", adm.UpdateOrder)

		adminGrp.GET("/reviews/all", adm.ListAllReviews)
		adminGrp.PUT("/reviews/:id/hidden", adm.SetReviewHidden)
		adminGrp.DELETE("/reviews/:id", adm.DeleteReview)

		adminGrp.GET("/repairs", adm.ListRepairs)
		adminGrp.POST("/repairs", adm.CreateRepair)
		adminGrp.PUT("/repairs/:id", adm.UpdateRepair)
		adminGrp.DELETE("/repairs/:id", adm.DeleteRepair)

		adminGrp.GET("/employees", adm.ListEmployees)
		adminGrp.POST("/employees", adm.CreateEmployee)
		adminGrp.PUT("/employees/:id", adm.UpdateEmployee)
		adminGrp.DELETE("/employees/:id", adm.DeleteEmployee)

		adminGrp.GET("/suppliers", adm.ListSuppliers)
		adminGrp.POST("/suppliers", adm.CreateSupplier)
		adminGrp.PUT("/suppliers/:id", adm.UpdateSupplier)
		adminGrp.DELETE("/suppliers/:id", adm.DeleteSupplier)

		adminGrp.GET("/technicians", adm.ListTechnicians)
		adminGrp.POST("/technicians", adm.CreateTechnician)
		adminGrp.PUT("/technicians/:id", adm.UpdateTechnician)
		adminGrp.DELETE("/technicians/:id", adm.DeleteTechnician)
	}

	return r
}

func resolveGinMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
