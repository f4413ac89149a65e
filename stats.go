package main

import "fmt"

// SessionStats aggregates counters across one interactive session.
type SessionStats struct {
	Ticks          int `json:"ticks"`
	FaultsInjected int `json:"faultsInjected"`
	FaultsCleared  int `json:"faultsCleared"`
	AutoRecoveries int `json:"autoRecoveries"`
	Activations    int `json:"activations"`
	RoleChanges    int `json:"roleChanges"`
	Resets         int `json:"resets"`
}

// Clone returns a copy safe to embed in a published frame.
func (s *SessionStats) Clone() *SessionStats {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// PrintStats writes a headless-run summary to stdout.
func PrintStats(stats *SessionStats) {
	if stats == nil {
		fmt.Println("No stats available")
		return
	}
	fmt.Println("=== Session Statistics ===")
	fmt.Printf("Ticks: %d\n", stats.Ticks)
	fmt.Printf("Faults Injected: %d\n", stats.FaultsInjected)
	fmt.Printf("Faults Cleared: %d\n", stats.FaultsCleared)
	fmt.Printf("Auto Recoveries: %d\n", stats.AutoRecoveries)
	fmt.Printf("Activations: %d\n", stats.Activations)
	fmt.Printf("Role Changes: %d\n", stats.RoleChanges)
	fmt.Printf("Resets: %d\n", stats.Resets)
}
