package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nurpe/siteworks/internal/config"
	"github.com/nurpe/siteworks/internal/excel"
	"github.com/nurpe/siteworks/internal/model"
	"github.com/nurpe/siteworks/internal/pdf"
	"github.com/nurpe/siteworks/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Work{}, &model.Person{}, &model.SiteObject{}, &model.Organization{},
		&model.Estimate{}, &model.EstimateLine{},
		&model.DailyReport{}, &model.DailyReportLine{},
		&model.Timesheet{}, &model.TimesheetLine{},
		&model.Movement{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixtures struct {
	object  model.SiteObject
	org     model.Organization
	workA   model.Work
	workB   model.Work
	person1 model.Person
	person2 model.Person
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		object:  model.SiteObject{ID: uuid.New(), Name: "Block A"},
		org:     model.Organization{ID: uuid.New(), Name: "BuildCo LLP", BIN: "123456789012"},
		workA:   model.Work{ID: uuid.New(), Name: "Brickwork", Unit: "m3"},
		workB:   model.Work{ID: uuid.New(), Name: "Plastering", Unit: "m2"},
		person1: model.Person{ID: uuid.New(), FullName: "Ivanov I.I.", Position: "mason"},
		person2: model.Person{ID: uuid.New(), FullName: "Petrov P.P.", Position: "plasterer"},
	}
	for _, record := range []interface{}{&f.object, &f.org, &f.workA, &f.workB, &f.person1, &f.person2} {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return f
}

type services struct {
	documents *DocumentService
	posting   *PostingService
	register  *RegisterService
}

func newServices(t *testing.T, db *gorm.DB) services {
	t.Helper()
	docRepo := repository.NewDocumentRepository(db)
	refRepo := repository.NewReferenceRepository(db)
	registerRepo := repository.NewRegisterRepository(db)

	pdfGenerator, err := pdf.NewGenerator()
	if err != nil {
		t.Fatalf("pdf generator: %v", err)
	}
	cfg := &config.Config{Register: config.RegisterConfig{MaxPageSize: 500}}

	log := zerolog.Nop()
	return services{
		documents: NewDocumentService(docRepo, refRepo, log),
		posting:   NewPostingService(db, docRepo, registerRepo, log),
		register:  NewRegisterService(registerRepo, docRepo, refRepo, excel.NewGenerator(), pdfGenerator, cfg),
	}
}

func managerPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), OrgID: uuid.New(), Role: "MANAGER"}
}

func viewerPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), OrgID: uuid.New(), Role: "VIEWER"}
}

// twoLineEstimate is the reference scenario: (A, qty 10, price 5) and
// (B, qty 2, price 50), total 150.
func twoLineEstimate(f fixtures, number string) EstimateInput {
	return EstimateInput{
		Number:         number,
		Date:           time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		ObjectID:       f.object.ID,
		OrganizationID: &f.org.ID,
		Lines: []EstimateLineInput{
			{WorkID: &f.workA.ID, Name: "Brickwork", Quantity: 10, Price: 5, Labor: 16},
			{WorkID: &f.workB.ID, Name: "Plastering", Quantity: 2, Price: 50, Labor: 8},
		},
	}
}
