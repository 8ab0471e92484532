package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stemsi/orgportal-backend/internal/config"
	"github.com/stemsi/orgportal-backend/internal/database"
	"github.com/stemsi/orgportal-backend/internal/logger"
	"github.com/stemsi/orgportal-backend/internal/model"
	"github.com/stemsi/orgportal-backend/internal/repository"
	"github.com/stemsi/orgportal-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	departmentRepo := repository.NewDepartmentRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)

	departmentService := service.NewDepartmentService(departmentRepo)
	studentService := service.NewStudentService(studentRepo)

	fmt.Println("=== Seeding 50 Students ===")

	departmentName := "Sekbid Olahraga"

	// Check if the department exists
	var departmentID int

	var existing model.Department
	err = pool.QueryRow(ctx,
		"SELECT id, name FROM departments WHERE name = $1",
		departmentName,
	).Scan(&existing.ID, &existing.Name)

	if err != nil {
		if err == pgx.ErrNoRows {
			fmt.Printf("Department %q not found. Creating it...\n", departmentName)
			newDepartment := &model.Department{
				Name:        departmentName,
				Description: "Bidang olahraga dan kesehatan jasmani",
			}
			if err := departmentService.Create(ctx, newDepartment); err != nil {
				log.Fatal().Err(err).Msg("Failed to create department")
			}
			departmentID = newDepartment.ID
			fmt.Printf("Created department with ID: %d\n", departmentID)
		} else {
			log.Fatal().Err(err).Msg("Failed to check existing department")
		}
	} else {
		departmentID = existing.ID
		fmt.Printf("Found existing department with ID: %d\n", departmentID)
	}

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
		"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
		"Rafi Ahmad", "Siska Saraswati", "Toni Setiawan", "Umi Kalsum", "Vina Panduwinata",
		"Wahyu Hidayat", "Xena Maharani", "Yudi Pratama", "Zaki Anwar", "Alifia Zahra",
		"Bagas Saputra", "Citra Kirana", "Dimas Anggara", "Elisa Novita", "Fikri Maulana",
		"Gali Rakasiwi", "Hani Hanifah", "Iqbal Ramadhan", "Jasmine Azzahra", "Kevin Sanjaya",
		"Larasati Dewi", "Miko Pambudi", "Nia Ramadhani", "Oscar Lawalata", "Puput Melati",
		"Reza Rahadian", "Sari Nila", "Tigor Siahaan", "Utari Maharani", "Vicky Prasetyo",
	}

	successCount := 0
	for i := 0; i < 50; i++ {
		nis := fmt.Sprintf("2024%03d", i+1)

		student := &model.Student{
			NIS:          nis,
			Name:         names[i],
			Email:        fmt.Sprintf("siswa%d@sekolah.sch.id", i+1),
			DepartmentID: &departmentID,
		}

		err := studentService.Create(ctx, student, "osisjaya")
		if err != nil {
			fmt.Printf("Error creating student %s (NIS: %s): %v\n", student.Name, student.NIS, err)
		} else {
			successCount++
			if (i+1)%10 == 0 {
				fmt.Printf("Created %d students...\n", i+1)
			}
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/50 students.\n", successCount)
}
