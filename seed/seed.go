// Package seed loads the placeholder dashboard data.
package seed

import (
	"fmt"
	"log"

	"invoices-dashboard/models"
	"invoices-dashboard/utils"

	"gorm.io/gorm"
)

// DefaultPassword is the login for every seeded user.
const DefaultPassword = "123456"

var users = []models.User{
	{ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: "user@nextmail.com"},
}

var customers = []models.Customer{
	{ID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Name: "Evil Rabbit", Email: "evil@rabbit.com", ImageURL: "/customers/evil-rabbit.png"},
	{ID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Name: "Delba de Oliveira", Email: "delba@oliveira.com", ImageURL: "/customers/delba-de-oliveira.png"},
	{ID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Name: "Lee Robinson", Email: "lee@robinson.com", ImageURL: "/customers/lee-robinson.png"},
	{ID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Name: "Michael Novotny", Email: "michael@novotny.com", ImageURL: "/customers/michael-novotny.png"},
	{ID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Name: "Amy Burns", Email: "amy@burns.com", ImageURL: "/customers/amy-burns.png"},
	{ID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Name: "Balazs Orban", Email: "balazs@orban.com", ImageURL: "/customers/balazs-orban.png"},
}

var invoices = []models.Invoice{
	{CustomerID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Amount: 15795, Status: models.StatusPending, Date: "2022-12-06"},
	{CustomerID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Amount: 20348, Status: models.StatusPending, Date: "2022-11-14"},
	{CustomerID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Amount: 3040, Status: models.StatusPaid, Date: "2022-10-29"},
	{CustomerID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Amount: 44800, Status: models.StatusPaid, Date: "2023-09-10"},
	{CustomerID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Amount: 34577, Status: models.StatusPending, Date: "2023-08-05"},
	{CustomerID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Amount: 54246, Status: models.StatusPending, Date: "2023-07-16"},
	{CustomerID: "d6e15727-9fe1-4961-8c5b-ea44a9bd81aa", Amount: 666, Status: models.StatusPending, Date: "2023-06-27"},
	{CustomerID: "76d65c26-f784-44a2-ac19-586678f7c2f2", Amount: 32545, Status: models.StatusPaid, Date: "2023-06-09"},
	{CustomerID: "cc27c14a-0acf-4f4a-a6c9-d45682c144b9", Amount: 1250, Status: models.StatusPaid, Date: "2023-06-17"},
	{CustomerID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Amount: 8546, Status: models.StatusPaid, Date: "2023-06-07"},
	{CustomerID: "3958dc9e-712f-4377-85e9-fec4b6a6442a", Amount: 500, Status: models.StatusPaid, Date: "2023-08-19"},
	{CustomerID: "13d07535-c59e-4157-a011-f8d2ef4e0cbb", Amount: 8945, Status: models.StatusPaid, Date: "2023-06-03"},
	{CustomerID: "3958dc9e-742f-4377-85e9-fec4b6a6442a", Amount: 1000, Status: models.StatusPaid, Date: "2022-06-05"},
}

var revenue = []models.Revenue{
	{Month: "Jan", Revenue: 2000},
	{Month: "Feb", Revenue: 1800},
	{Month: "Mar", Revenue: 2200},
	{Month: "Apr", Revenue: 2500},
	{Month: "May", Revenue: 2300},
	{Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500},
	{Month: "Aug", Revenue: 3700},
	{Month: "Sep", Revenue: 2500},
	{Month: "Oct", Revenue: 2800},
	{Month: "Nov", Revenue: 3000},
	{Month: "Dec", Revenue: 4800},
}

// Run inserts users, customers, invoices and revenue in one transaction. It
// does nothing when customers already exist, so it is safe to run twice.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count customers: %w", err)
	}
	if count > 0 {
		log.Printf("Seed skipped: %d customers already present", count)
		return nil
	}

	hashed, err := utils.HashPassword(DefaultPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// copies keep the package fixtures free of generated ids
		seededUsers := append([]models.User(nil), users...)
		for i := range seededUsers {
			seededUsers[i].Password = hashed
		}
		if err := tx.Create(&seededUsers).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		seededCustomers := append([]models.Customer(nil), customers...)
		if err := tx.Create(&seededCustomers).Error; err != nil {
			return fmt.Errorf("failed to seed customers: %w", err)
		}
		seededInvoices := append([]models.Invoice(nil), invoices...)
		if err := tx.Create(&seededInvoices).Error; err != nil {
			return fmt.Errorf("failed to seed invoices: %w", err)
		}
		seededRevenue := append([]models.Revenue(nil), revenue...)
		if err := tx.Create(&seededRevenue).Error; err != nil {
			return fmt.Errorf("failed to seed revenue: %w", err)
		}

		log.Printf("Seeded %d users, %d customers, %d invoices, %d revenue rows",
			len(seededUsers), len(seededCustomers), len(seededInvoices), len(seededRevenue))
		return nil
	})
}
