// Package aitips asks an advisor for honey production tips about a hive.
package aitips

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

// Resources are the spare resources reported to the advisor
type Resources struct {
	Pollen   float64 `json:"pollen" validate:"min=0"`
	Propolis float64 `json:"propolis" validate:"min=0"`
}

// Request describes a hive to the advisor
type Request struct {
	HiveLevel                  int       `json:"hiveLevel" validate:"min=1"`
	WorkerBeeCount             int       `json:"workerBeeCount" validate:"min=0"`
	FlowerTypes                []string  `json:"flowerTypes" validate:"required,min=1,dive,required,max=64"`
	CurrentHoneyProductionRate float64   `json:"currentHoneyProductionRate" validate:"min=0"`
	AvailableResources         Resources `json:"availableResources"`
}

// Response holds the advisor's tips
type Response struct {
	OptimizationTips []string `json:"optimizationTips"`
	Reasoning        string   `json:"reasoning"`
}

// Advisor produces optimization tips. It never sees or changes live state.
type Advisor interface {
	Optimize(ctx context.Context, req Request) (Response, error)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the request against its field rules
func (r Request) Validate() error {
	if err := getValidator().Struct(r); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// FromState builds a request from a copy of the hive state
func FromState(s domain.HiveState) Request {
	return Request{
		HiveLevel:                  s.HiveLevel,
		WorkerBeeCount:             s.WorkerBeeCount,
		FlowerTypes:                append([]string(nil), s.FlowerTypes...),
		CurrentHoneyProductionRate: s.HoneyPerHour,
		AvailableResources: Resources{
			Pollen:   s.Pollen,
			Propolis: s.Propolis,
		},
	}
}

// Validated rejects invalid requests before they reach next
func Validated(next Advisor) Advisor {
	return AdvisorFunc(func(ctx context.Context, req Request) (Response, error) {
		if err := req.Validate(); err != nil {
			return Response{}, err
		}
		return next.Optimize(ctx, req)
	})
}

// AdvisorFunc adapts a function to the Advisor interface
type AdvisorFunc func(ctx context.Context, req Request) (Response, error)

// Optimize calls f
func (f AdvisorFunc) Optimize(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
