package api

import (
	"github.com/JaimeStill/palmwatch/internal/analyses"
	"github.com/JaimeStill/palmwatch/internal/farmers"
	"github.com/JaimeStill/palmwatch/internal/recommendations"
	"github.com/JaimeStill/palmwatch/internal/surveys"
	"github.com/JaimeStill/palmwatch/internal/trees"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Farmers         farmers.System
	Surveys         surveys.System
	Trees           trees.System
	Analyses        analyses.System
	Recommendations *recommendations.Catalog
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	return &Domain{
		Farmers: farmers.New(db, runtime.Logger, runtime.Pagination),
		Surveys: surveys.New(db, runtime.Storage, runtime.Logger, runtime.Pagination),
		Trees:   trees.New(db, runtime.Logger, runtime.Pagination),
		Analyses: analyses.New(
			db,
			runtime.Storage,
			runtime.Aggregator,
			runtime.Catalog,
			runtime.Logger,
			runtime.Pagination,
			runtime.Limits,
		),
		Recommendations: runtime.Catalog,
	}
}
