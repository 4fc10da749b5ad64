package mysql

import (
	"fmt"
	"os"

	"fulfillment-service/internal/domain"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func NewMySQLFromEnv() (*gorm.DB, error) {
	user := os.Getenv("MYSQL_USER")
	pass := os.Getenv("MYSQL_PASSWORD")
	host := os.Getenv("MYSQL_HOST")
	port := os.Getenv("MYSQL_PORT")
	dbname := os.Getenv("MYSQL_DATABASE")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", user, pass, host, port, dbname)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&domain.Product{},
		&domain.Vendor{},
		&domain.Cart{},
		&domain.CartItem{},
		&domain.MarketplaceCartItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.RiderOrder{},
		&domain.Subscription{},
		&domain.PaymentEvent{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
