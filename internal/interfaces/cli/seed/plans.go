package seed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	subscriptionUsecases "f3manager/internal/application/subscription/usecases"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/logger"
)

// PlanSeed is one entry of a plans file:
//
//	plans:
//	  - name: Mensual
//	    description: Acceso ilimitado por 30 días
//	    price: "500.00"
//	    duration_days: 30
type PlanSeed struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Price        string `yaml:"price"`
	DurationDays int    `yaml:"duration_days"`
}

type planFile struct {
	Plans []PlanSeed `yaml:"plans"`
}

// LoadPlans decodes a plans file. Unknown keys are rejected.
func LoadPlans(r io.Reader) ([]PlanSeed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file planFile
	if err := dec.Decode(&file); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("plans file is empty")
		}
		return nil, fmt.Errorf("failed to decode plans file: %w", err)
	}
	for i, p := range file.Plans {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("plan #%d has no name", i+1)
		}
	}
	return file.Plans, nil
}

type planCreator interface {
	Execute(ctx context.Context, cmd subscriptionUsecases.CreatePlanCommand) (*subscription.Plan, error)
}

type planLister interface {
	Execute(ctx context.Context, query subscriptionUsecases.ListPlansQuery) (*subscriptionUsecases.ListPlansResult, error)
}

// PlanSeeder creates plans whose names are not taken yet.
type PlanSeeder struct {
	creator planCreator
	lister  planLister
	logger  logger.Interface
}

func NewPlanSeeder(creator planCreator, lister planLister, logger logger.Interface) *PlanSeeder {
	return &PlanSeeder{creator: creator, lister: lister, logger: logger}
}

type SeedResult struct {
	Created []string
	Skipped []string
}

// Seed creates every plan in seeds. Names are compared case-insensitively
// against existing plans, active or not, and against earlier entries.
func (s *PlanSeeder) Seed(ctx context.Context, seeds []PlanSeed) (*SeedResult, error) {
	existing, err := s.lister.Execute(ctx, subscriptionUsecases.ListPlansQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	taken := make(map[string]bool, len(existing.Plans))
	for _, p := range existing.Plans {
		taken[strings.ToLower(strings.TrimSpace(p.Name()))] = true
	}

	result := &SeedResult{}
	for _, seed := range seeds {
		key := strings.ToLower(strings.TrimSpace(seed.Name))
		if taken[key] {
			s.logger.Infow("plan already exists, skipping", "name", seed.Name)
			result.Skipped = append(result.Skipped, seed.Name)
			continue
		}

		price, err := sharedvo.ParseMoney(seed.Price)
		if err != nil {
			return result, fmt.Errorf("plan %q: %w", seed.Name, err)
		}

		plan, err := s.creator.Execute(ctx, subscriptionUsecases.CreatePlanCommand{
			Name:         strings.TrimSpace(seed.Name),
			Description:  seed.Description,
			Price:        price,
			DurationDays: seed.DurationDays,
			Actor:        authorization.SystemActor,
		})
		if err != nil {
			return result, fmt.Errorf("plan %q: %w", seed.Name, err)
		}

		taken[key] = true
		result.Created = append(result.Created, plan.Name())
	}
	return result, nil
}
