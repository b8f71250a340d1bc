package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jattu8602/school-portal-web-sub001/internal/config"
	"github.com/jattu8602/school-portal-web-sub001/internal/database"
	"github.com/jattu8602/school-portal-web-sub001/internal/model"
	"github.com/jattu8602/school-portal-web-sub001/internal/repository"
)

// schooladmin onboards a school into the portal: it creates the school
// document, its classes, and optionally a demo roster so the portal can
// be exercised right away.
func main() {
	name := flag.String("name", "", "School name (required)")
	code := flag.String("code", "", "School code used on the login page (required unless -random-code)")
	randomCode := flag.Bool("random-code", false, "Generate a unique school code from the name")
	address := flag.String("address", "", "School address (optional)")
	classes := flag.String("classes", "", "Comma-separated class names to create (e.g. '10A,10B')")
	seed := flag.Bool("seed", false, "Seed a demo student and teacher into the first class")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required")
		flag.Usage()
		os.Exit(1)
	}
	if *code == "" && !*randomCode {
		fmt.Fprintln(os.Stderr, "Error: provide -code or pass -random-code")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	schoolRepo := repository.NewSchoolRepository(db)
	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)

	schoolCode := strings.ToUpper(strings.TrimSpace(*code))
	if *randomCode {
		schoolCode = generateCode(*name)
	}

	// Codes are not unique across tenants. Login resolves a duplicate code
	// to the earliest registered school, so a collision here means students
	// of the new school would land in someone else's portal.
	existing, err := schoolRepo.CountByCode(ctx, schoolCode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error checking school code: %v\n", err)
		os.Exit(1)
	}
	if existing > 0 {
		fmt.Fprintf(os.Stderr, "Warning: code %q is already used by %d school(s); logins with it resolve to the earliest one\n", schoolCode, existing)
		fmt.Fprintln(os.Stderr, "Consider -random-code to avoid the collision")
	}

	school := &model.School{
		Name: strings.TrimSpace(*name),
		Code: schoolCode,
	}
	if *address != "" {
		addr := *address
		school.Address = &addr
	}

	if err := schoolRepo.Create(ctx, school); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating school: %v\n", err)
		os.Exit(1)
	}

	var created []*model.Class
	for _, className := range splitClasses(*classes) {
		class := &model.Class{
			SchoolID: school.ID,
			Name:     className,
		}
		if err := classRepo.Create(ctx, class); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating class %q: %v\n", className, err)
			os.Exit(1)
		}
		created = append(created, class)
	}

	var demoStudent *model.Student
	var demoTeacher *model.Teacher
	if *seed {
		if len(created) == 0 {
			fmt.Fprintln(os.Stderr, "Error: -seed requires at least one class")
			os.Exit(1)
		}
		demoStudent, demoTeacher, err = seedDemoRoster(ctx, studentRepo, teacherRepo, school, created[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding demo roster: %v\n", err)
			os.Exit(1)
		}
	}

	if *outputJSON {
		output := map[string]any{
			"school_id": school.ID,
			"name":      school.Name,
			"code":      school.Code,
			"classes":   created,
		}
		if demoStudent != nil {
			output["demo_student"] = map[string]any{
				"username": demoStudent.Username,
				"class_id": demoStudent.ClassID,
			}
			output["demo_teacher"] = map[string]any{
				"email": demoTeacher.Email,
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	fmt.Println("School Onboarded")
	fmt.Println("================")
	fmt.Printf("Name:  %s\n", school.Name)
	fmt.Printf("Code:  %s\n", school.Code)
	fmt.Printf("ID:    %s\n", school.ID)
	for _, class := range created {
		fmt.Printf("Class: %s (%s)\n", class.Name, class.ID)
	}
	if demoStudent != nil {
		fmt.Println()
		fmt.Println("Demo logins:")
		fmt.Printf("  Student: %s / demo123 (class %s)\n", demoStudent.Username, created[0].Name)
		fmt.Printf("  Teacher: %s / demo123\n", demoTeacher.Email)
	}
}

// generateCode derives a short uppercase code from the school name plus a
// random suffix so repeated runs never collide.
func generateCode(name string) string {
	prefix := make([]rune, 0, 4)
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			prefix = append(prefix, r)
		}
		if len(prefix) == 4 {
			break
		}
	}
	if len(prefix) == 0 {
		prefix = []rune("SCH")
	}
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return string(prefix) + "-" + suffix
}

func splitClasses(csv string) []string {
	var names []string
	for _, part := range strings.Split(csv, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

func seedDemoRoster(ctx context.Context, studentRepo *repository.StudentRepository, teacherRepo *repository.TeacherRepository, school *model.School, class *model.Class) (*model.Student, *model.Teacher, error) {
	rollNo := "1"
	student := &model.Student{
		SchoolID: school.ID,
		ClassID:  class.ID,
		Username: "demo.student",
		Password: "demo123",
		Name:     "Demo Student",
		RollNo:   &rollNo,
	}
	if err := studentRepo.Create(ctx, student); err != nil {
		return nil, nil, fmt.Errorf("creating demo student: %w", err)
	}

	teacher := &model.Teacher{
		SchoolID: school.ID,
		Email:    "demo.teacher@" + strings.ToLower(school.Code) + ".example",
		Password: "demo123",
		Name:     "Demo Teacher",
		Subjects: []string{"Mathematics"},
		ClassIDs: []string{class.ID},
	}
	if err := teacherRepo.Create(ctx, teacher); err != nil {
		return nil, nil, fmt.Errorf("creating demo teacher: %w", err)
	}

	return student, teacher, nil
}
