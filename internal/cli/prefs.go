package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/neighborfit/internal/output"
	"github.com/vijay-prabhu/neighborfit/internal/service"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage lifestyle preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a user's saved preferences",
	RunE:  runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save a user's preferences",
	Long: `Save a user's preferences, replacing any earlier record.

Weights are relative: 2,1,1,1 and 4,2,2,2 rank identically. At least one
weight must be greater than zero. Budget and commute time are stored but do
not affect scores.

Examples:
  neighborfit prefs set --user=alice --budget=3000 --commute-time=30 \
    --amenities=parks,schools --safety=2 --commute=1 --amenity-weight=1 --walkability=1`,
	RunE: runPrefsSet,
}

var (
	prefsUser        string
	prefsBudget      float64
	prefsCommuteTime int
	prefsAmenities   []string
	prefsSafety      float64
	prefsCommute     float64
	prefsAmenityW    float64
	prefsWalkability float64
)

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd)

	prefsCmd.PersistentFlags().StringVarP(&prefsUser, "user", "u", "", "User ID")
	_ = prefsCmd.MarkPersistentFlagRequired("user")

	f := prefsSetCmd.Flags()
	f.Float64Var(&prefsBudget, "budget", 0, "Monthly housing budget")
	f.IntVar(&prefsCommuteTime, "commute-time", 0, "Maximum commute in minutes")
	f.StringSliceVar(&prefsAmenities, "amenities", nil, "Desired amenity tags")
	f.Float64Var(&prefsSafety, "safety", 1, "Safety weight")
	f.Float64Var(&prefsCommute, "commute", 1, "Commute weight")
	f.Float64Var(&prefsAmenityW, "amenity-weight", 1, "Amenities weight")
	f.Float64Var(&prefsWalkability, "walkability", 1, "Walkability weight")
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.svc.GetPreferences(cmd.Context(), prefsUser)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, p)
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	amenities := prefsAmenities
	if amenities == nil {
		amenities = []string{}
	}

	p, err := a.svc.SavePreferences(cmd.Context(), service.PreferencesInput{
		UserID:            prefsUser,
		Budget:            &prefsBudget,
		CommuteTime:       &prefsCommuteTime,
		Amenities:         amenities,
		SafetyWeight:      &prefsSafety,
		CommuteWeight:     &prefsCommute,
		AmenitiesWeight:   &prefsAmenityW,
		WalkabilityWeight: &prefsWalkability,
	})
	if err != nil {
		return err
	}

	if outputFmt == "table" {
		fmt.Printf("Saved preferences for %s\n\n", p.UserID)
	}
	return output.Output(outputFmt, p)
}
