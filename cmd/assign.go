package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskforge/allocd/core/assign"
	"github.com/taskforge/allocd/core/model"
	"github.com/taskforge/allocd/core/store"
	"github.com/taskforge/allocd/infra/logger"
)

var (
	fixturePath string
	keepFlag    bool
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Run one allocation over a project fixture file",
	Long: `Reads a JSON fixture holding a project's team members and confirmed
requirements, runs the allocation engine in memory and prints the result.`,
	RunE: assignFixture,
}

func init() {
	assignCmd.Flags().StringVarP(&fixturePath, "file", "f", "", "project fixture file (required)")
	assignCmd.Flags().BoolVar(&keepFlag, "keep", false, "append instead of replacing prior auto assignments")
	_ = assignCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(assignCmd)
}

// fixture mirrors the persisted shape for one project.
type fixture struct {
	ProjectID    int64               `json:"project_id"`
	Members      []model.TeamMember  `json:"members"`
	Requirements []model.Requirement `json:"requirements"`
}

func assignFixture(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(fixturePath)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}
	if fx.ProjectID == 0 {
		fx.ProjectID = 1
	}

	mem := store.NewMemoryStore()
	for _, m := range fx.Members {
		m.ProjectID = fx.ProjectID
		mem.AddMember(m)
	}
	for _, r := range fx.Requirements {
		r.ProjectID = fx.ProjectID
		r.Confirmed = true
		mem.AddRequirement(r)
	}

	engine, err := assign.NewEngine(mem, mem, mem, nil, nil, logger.New("assign"))
	if err != nil {
		return err
	}
	res, err := engine.Run(cmd.Context(), fx.ProjectID, assign.RunOptions{Keep: keepFlag})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
