package routes

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"home-service-server/database"
	"home-service-server/middleware"
	"home-service-server/models"
	"home-service-server/utils"
)

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Address     string `json:"address"`
	Specialty   string `json:"specialty"`
	Role        string `json:"role"`
	Services    []uint `json:"services"` // Worker capability set, by service id
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest represents the profile update request
type ProfileUpdateRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Specialty   string `json:"specialty"`
}

var emailRegexp = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/register/", register)
	router.POST("/login/", login)
}

// RegisterProfileRoutes registers authenticated account routes
func RegisterProfileRoutes(router *gin.RouterGroup) {
	router.POST("/logout/", logout)
	router.GET("/profile/", getProfile)
	router.PUT("/profile/", updateProfile)
}

// register handles user registration
func register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if !emailRegexp.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid email format",
			"message": "Please provide a valid email address",
		})
		return
	}

	if !utils.ValidatePhoneNumber(req.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid phone number",
			"message": "Phone number must be exactly 10 digits",
		})
		return
	}

	role := models.UserRole(req.Role)
	if req.Role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleWorker {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid role",
			"message": "Role must be USER or WORKER",
		})
		return
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Username already exists",
			"message": "A user with this username already exists",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Role:         role,
		// Regular users are usable immediately; workers wait for admin approval
		IsApproved: role == models.RoleUser,
	}
	if req.Specialty != "" {
		user.Specialty = &req.Specialty
	}

	if err := database.DB.Create(&user).Error; err != nil {
		// The pre-check above races with concurrent registrations; the
		// unique index is the authority
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Username already exists",
				"message": "A user with this username already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "User creation failed",
			"message": "Failed to create user account",
		})
		return
	}

	// Attach the selected services to a worker's capability set,
	// skipping ids that don't exist
	if role == models.RoleWorker && len(req.Services) > 0 {
		var services []models.Service
		if err := database.DB.Where("id IN ?", req.Services).Find(&services).Error; err == nil && len(services) > 0 {
			database.DB.Model(&user).Association("Services").Append(&services)
		}
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Failed to generate authentication token",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// login handles user authentication
func login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Invalid username or password",
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Invalid username or password",
		})
		return
	}

	// Unapproved workers cannot log in at all
	if user.IsWorker() && !user.IsApproved {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Worker account not approved yet",
			"message": "Please contact admin for approval before logging in",
		})
		return
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Failed to generate authentication token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// logout acknowledges the logout; tokens are stateless and simply expire
func logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// getProfile returns the authenticated user's profile
func getProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, profileResponse(user))
}

// updateProfile updates the authenticated user's contact details
func updateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.Email != "" && req.Email != user.Email {
		if !emailRegexp.MatchString(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid email format",
				"message": "Please provide a valid email address",
			})
			return
		}
		user.Email = req.Email
	}

	if req.PhoneNumber != "" {
		if !utils.ValidatePhoneNumber(req.PhoneNumber) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid phone number",
				"message": "Phone number must be exactly 10 digits",
			})
			return
		}
		user.PhoneNumber = req.PhoneNumber
	}

	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Specialty != "" {
		user.Specialty = &req.Specialty
	}

	if err := database.DB.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Profile update failed",
			"message": "Failed to save profile changes",
		})
		return
	}

	c.JSON(http.StatusOK, profileResponse(user))
}

func profileResponse(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"address":      user.Address,
		"role":         user.Role,
		"specialty":    user.Specialty,
		"is_approved":  user.IsApproved,
	}
}
