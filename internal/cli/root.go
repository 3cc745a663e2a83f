// Package cli maps commands 1:1 onto allocation-service operations. Commands
// parse arguments and format results; they contain no allocation logic.
package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/dojo-service/internal/service"
)

// Dependencies bundles what the command tree needs.
type Dependencies struct {
	Service      *service.AllocationService
	Logger       *zap.Logger
	Out          io.Writer
	SnapshotPath string
	Version      string
}

// NewRootCommand builds the dojo command tree.
func NewRootCommand(deps Dependencies) *cobra.Command {
	root := &cobra.Command{
		Use:           "dojo",
		Short:         "The Dojo office space allocation service",
		Long:          "Assigns offices and living spaces to fellows and staff under fixed capacity limits, using randomized allocation.",
		Version:       deps.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCreateRoomCommand(deps),
		newAddPersonCommand(deps),
		newAllocateOfficeCommand(deps),
		newAllocateLivingSpaceCommand(deps),
		newReallocatePersonCommand(deps),
		newLoadPeopleCommand(deps),
		newPrintRoomCommand(deps),
		newPrintAllocationsCommand(deps),
		newPrintUnallocatedCommand(deps),
		newSaveStateCommand(deps),
		newLoadStateCommand(deps),
	)
	return root
}
