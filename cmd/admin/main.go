// Command admin manages admin role assignment from the shell.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"lumen/internal/config"
	"lumen/internal/database"
	"lumen/internal/middleware"
	"lumen/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin promote <user_id>   - Grant the admin role")
		fmt.Println("  go run ./cmd/admin demote <user_id>    - Revoke the admin role")
		fmt.Println("  go run ./cmd/admin list                - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	middleware.InitMiddleware(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	switch os.Args[1] {
	case "promote":
		setRole(db, userIDArg(), models.AdminRoleName)
	case "demote":
		setRole(db, userIDArg(), "member")
	case "list":
		listAdmins(db)
	default:
		log.Fatalf("Unknown command: %s", os.Args[1])
	}
}

func userIDArg() uint {
	if len(os.Args) < 3 {
		log.Fatal("user_id argument required")
	}
	id, err := strconv.ParseUint(os.Args[2], 10, 32)
	if err != nil {
		log.Fatalf("Invalid user_id %q: %v", os.Args[2], err)
	}
	return uint(id)
}

func setRole(db *gorm.DB, userID uint, roleName string) {
	role := models.Role{RoleName: roleName}
	if err := db.Where("role_name = ?", roleName).FirstOrCreate(&role).Error; err != nil {
		log.Fatalf("Failed to resolve role %q: %v", roleName, err)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("User %d not found", userID)
		}
		log.Fatalf("Failed to load user %d: %v", userID, err)
	}

	if err := db.Model(&user).UpdateColumn("role_id", role.ID).Error; err != nil {
		log.Fatalf("Failed to update role: %v", err)
	}
	fmt.Printf("User %s (%d) now has role %s\n", user.Username, user.ID, roleName)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	err := db.Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.role_name = ?", models.AdminRoleName).
		Find(&admins).Error
	if err != nil {
		log.Fatalf("Failed to list admins: %v", err)
	}
	if len(admins) == 0 {
		fmt.Println("No admins found")
		return
	}
	for _, admin := range admins {
		fmt.Printf("%d\t%s\t%s\n", admin.ID, admin.Username, admin.FullName())
	}
}
