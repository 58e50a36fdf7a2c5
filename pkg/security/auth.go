package security

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/wongivan852/asset-movement-tracking-system/internal/repository"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/models"
	"github.com/wongivan852/asset-movement-tracking-system/pkg/roles"
)

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

// secret loads the signing key on first use so importing the package does
// not require the variable to be set.
func secret() []byte {
	jwtSecretOnce.Do(func() {
		value := os.Getenv("JWT_SECRET")

		if value == "" {
			if err := godotenv.Load(); err != nil {
				log.Printf("Warning: unable to load .env: %v", err)
			}
			value = os.Getenv("JWT_SECRET")
		}

		if value == "" {
			log.Fatal("JWT_SECRET environment variable is not set")
		}

		jwtSecret = []byte(value)
	})

	return jwtSecret
}

func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "username", "fullname", "password_hash", "role", "is_superuser", "active").
		From("users").
		Where(goqu.Ex{"username": username, "active": true})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("unknown user: %s", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userID":    strconv.Itoa(user.ID),
		"role":      string(user.Role),
		"username":  user.Username,
		"superuser": user.IsSuperuser,
		"exp":       time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// CurrentUser rebuilds the acting user from JWT claims placed in the gin
// context by JWTMiddleware. Workflow operations take this value
// explicitly; there is no ambient current user.
func CurrentUser(c *gin.Context) (*models.User, error) {
	rawID, exists := c.Get("userID")
	if !exists {
		return nil, fmt.Errorf("no authenticated user in context")
	}

	idString, ok := rawID.(string)
	if !ok {
		return nil, fmt.Errorf("userID claim is not a string")
	}

	userID, err := strconv.Atoi(idString)
	if err != nil {
		return nil, fmt.Errorf("invalid userID claim: %w", err)
	}

	role, _ := c.Get("role")
	roleString, ok := role.(string)
	if !ok {
		return nil, fmt.Errorf("role claim is not a string")
	}

	username, _ := c.Get("username")
	usernameString, _ := username.(string)

	superuser, _ := c.Get("superuser")
	isSuperuser, _ := superuser.(bool)

	return &models.User{
		ID:          userID,
		Username:    usernameString,
		Role:        roles.Role(roleString),
		IsSuperuser: isSuperuser,
		Active:      true,
	}, nil
}
