package system

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gbmsdev99/xclinic/config"
	"github.com/gbmsdev99/xclinic/internal/models"
	"github.com/gbmsdev99/xclinic/internal/store"
	"github.com/gbmsdev99/xclinic/internal/store/postgres"
	"github.com/gbmsdev99/xclinic/pkg/database"
)

func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the clinic settings row with defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}
			cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			pool, err := database.NewPool(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			s := postgres.NewStore(pool)

			// Never clobber an existing settings row.
			if _, err := s.GetSettings(ctx); err == nil {
				fmt.Println("Clinic settings already seeded, nothing to do.")
				return nil
			} else if !errors.Is(err, store.ErrSettingsNotFound) {
				return fmt.Errorf("failed to check settings: %w", err)
			}

			_, err = s.UpdateSettings(ctx, models.ClinicSettings{
				ClinicName:             "XClinic",
				ClinicCode:             cfg.Booking.ClinicCode,
				ConsultationFee:        cfg.Booking.DefaultConsultationFee,
				AvgConsultationMinutes: cfg.Booking.DefaultAvgConsultationMins,
				OnlinePaymentEnabled:   true,
				ClinicPaymentEnabled:   true,
				Timezone:               "UTC",
				OperatingDays:          []string{"mon", "tue", "wed", "thu", "fri", "sat"},
			})
			if err != nil {
				return fmt.Errorf("failed to seed settings: %w", err)
			}

			fmt.Println("Clinic settings seeded.")
			return nil
		},
	}

	return cmd
}
