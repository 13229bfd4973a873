package config

import (
	"fmt"

	"github.com/kilianp07/rsudist/core/vesting"
)

// VestingConfig defines how schedules are computed.
type VestingConfig struct {
	// Timezone is the IANA zone whose midnight every vesting date lands on.
	Timezone string `json:"timezone"`
	// Allocation selects the share allocator: "front_loaded" or "accrual".
	Allocation string `json:"allocation"`
}

// SetDefaults applies sane defaults.
func (c *VestingConfig) SetDefaults() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.Allocation == "" {
		c.Allocation = vesting.AllocationFrontLoaded
	}
}

// Validate checks that the timezone and allocation policy resolve.
func (c VestingConfig) Validate() error {
	if _, err := vesting.LoadLocation(c.Timezone); err != nil {
		return err
	}
	if _, err := vesting.AllocatorByName(c.Allocation); err != nil {
		return fmt.Errorf("allocation: %w", err)
	}
	return nil
}

// ServerConfig defines the HTTP API settings.
type ServerConfig struct {
	Address string `json:"address"`
	// Token enables bearer authentication when non-empty.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}
