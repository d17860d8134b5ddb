package main

import (
	"time"

	"github.com/sells-group/geo-locator/internal/config"
	"github.com/sells-group/geo-locator/internal/pipeline"
	"github.com/sells-group/geo-locator/pkg/geocode"
)

// newGeocoder builds the Google reverse geocoder from config.
func newGeocoder(c *config.Config) geocode.Client {
	return geocode.NewClient(c.Geocode.APIKey,
		geocode.WithBaseURL(c.Geocode.BaseURL),
		geocode.WithRateLimit(c.Geocode.RateLimit),
		geocode.WithTimeout(time.Duration(c.Geocode.TimeoutSecs)*time.Second),
	)
}

// initPipeline validates config for mode and wires the geocoder into a
// pipeline.
func initPipeline(c *config.Config, mode string) (*pipeline.Pipeline, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}
	return pipeline.New(newGeocoder(c), c.PipelineOptions()), nil
}
