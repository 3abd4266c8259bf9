package api

import (
	"github.com/JaimeStill/roster/internal/employees"
	"github.com/JaimeStill/roster/internal/onboarding"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Employees  employees.System
	Onboarding onboarding.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	employeesSystem := employees.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	onboardingSystem := onboarding.New(
		employeesSystem,
		runtime.Renderer,
		runtime.Converter,
		runtime.Storage,
		runtime.Pipeline,
		runtime.Logger,
	)

	return &Domain{
		Employees:  employeesSystem,
		Onboarding: onboardingSystem,
	}
}
