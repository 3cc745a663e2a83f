package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spec-kit/dojo-service/internal/domain"
	"github.com/spec-kit/dojo-service/internal/report"
	"github.com/spec-kit/dojo-service/internal/service"
	"github.com/spec-kit/dojo-service/internal/snapshot"
)

func newCreateRoomCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "create_room <room_type> <room_name>...",
		Short: "Create one or more rooms of the given type",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomType := args[0]
			var firstErr error
			created := 0
			for _, name := range args[1:] {
				room, err := deps.Service.CreateRoom(cmd.Context(), roomType, name)
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					fmt.Fprintf(deps.Out, "Error: %v\n", err)
					continue
				}
				created++
				fmt.Fprintf(deps.Out, "%s %s called %s has been successfully created!\n",
					article(room.Type.Display()), room.Type.Display(), room.Name)
			}
			if created == 0 {
				return firstErr
			}
			return nil
		},
	}
}

func newAddPersonCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "add_person <person_name> <FELLOW|STAFF> [Y|N]",
		Short: "Register a person and allocate them rooms",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			wantsAccommodation := "N"
			if len(args) == 3 {
				wantsAccommodation = args[2]
			}
			result, err := deps.Service.AddPerson(cmd.Context(), args[0], args[1], wantsAccommodation)
			if err != nil {
				return err
			}
			printAddResult(deps, result)
			return nil
		},
	}
}

func printAddResult(deps Dependencies, result *service.AddPersonResult) {
	person := result.Person
	fmt.Fprintf(deps.Out, "%s %s has been successfully added (ID: %s).\n",
		roleTitle(person.Role), person.Name, person.ID)

	first := firstName(person.Name)
	if result.Office.RoomName != "" {
		fmt.Fprintf(deps.Out, "%s has been allocated the office %s\n", first, result.Office.RoomName)
	} else {
		fmt.Fprintln(deps.Out, "No office available")
	}
	if result.LivingSpace.Attempted {
		if result.LivingSpace.RoomName != "" {
			fmt.Fprintf(deps.Out, "%s has been allocated the livingspace %s\n", first, result.LivingSpace.RoomName)
		} else {
			fmt.Fprintln(deps.Out, "No living space available")
		}
	}
}

func newAllocateOfficeCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate_office <person_id>",
		Short: "Allocate a random office to an unallocated person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := deps.Service.AllocateOffice(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if room == nil {
				fmt.Fprintln(deps.Out, "No office available")
				return nil
			}
			fmt.Fprintf(deps.Out, "Allocated the office %s\n", room.Name)
			return nil
		},
	}
}

func newAllocateLivingSpaceCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate_living_space <person_id>",
		Short: "Allocate a random living space to an eligible fellow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := deps.Service.AllocateLivingSpace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if room == nil {
				fmt.Fprintln(deps.Out, "No living space available")
				return nil
			}
			fmt.Fprintf(deps.Out, "Allocated the livingspace %s\n", room.Name)
			return nil
		},
	}
}

func newReallocatePersonCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "reallocate_person <person_id> <new_room_name>",
		Short: "Move a person to another room of the same type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := deps.Service.ReallocatePerson(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			person, _ := deps.Service.PersonByID(args[0])
			fmt.Fprintf(deps.Out, "%s has been reallocated to %s.\n", person.Name, room.Name)
			return nil
		},
	}
}

func newLoadPeopleCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "load_people <filename>",
		Short: "Bulk-register people from a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := deps.Service.LoadPeople(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, warning := range summary.Warnings {
				fmt.Fprintf(deps.Out, "Warning: %s\n", warning)
			}
			fmt.Fprintf(deps.Out, "Processed %d records, skipped %d.\n",
				summary.Processed, summary.Skipped)
			return nil
		},
	}
}

func newPrintRoomCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "print_room <room_name>",
		Short: "Print the occupants of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := report.Room(deps.Service, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(deps.Out, content)
			return nil
		},
	}
}

func newPrintAllocationsCommand(deps Dependencies) *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:   "print_allocations",
		Short: "Print room allocations grouped by room",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitReport(deps, report.Allocations(deps.Service), outputFile)
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to this file")
	return cmd
}

func newPrintUnallocatedCommand(deps Dependencies) *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:   "print_unallocated",
		Short: "Print people with missing allocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitReport(deps, report.Unallocated(deps.Service), outputFile)
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the report to this file")
	return cmd
}

func emitReport(deps Dependencies, content, outputFile string) error {
	if outputFile == "" {
		fmt.Fprint(deps.Out, content)
		return nil
	}
	if err := report.WriteFile(outputFile, content); err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Report written to %s\n", outputFile)
	return nil
}

func newSaveStateCommand(deps Dependencies) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "save_state",
		Short: "Save the current state to a snapshot file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := snapshot.NewStore(snapshotPath(deps, dbPath), deps.Logger)
			if err := deps.Service.SaveState(cmd.Context(), store); err != nil {
				return err
			}
			fmt.Fprintf(deps.Out, "State saved to %s\n", store.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "snapshot file path")
	return cmd
}

func newLoadStateCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "load_state <snapshot_file>",
		Short: "Replace the current state with a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := snapshot.NewStore(args[0], deps.Logger)
			if err := deps.Service.LoadState(cmd.Context(), store); err != nil {
				return err
			}
			fmt.Fprintf(deps.Out, "State loaded from %s\n", store.Path())
			return nil
		},
	}
}

func snapshotPath(deps Dependencies, override string) string {
	if override != "" {
		return override
	}
	return deps.SnapshotPath
}

func article(noun string) string {
	if strings.ContainsRune("aeiou", rune(noun[0])) {
		return "An"
	}
	return "A"
}

func roleTitle(role domain.PersonRole) string {
	if role == domain.RoleFellow {
		return "Fellow"
	}
	return "Staff"
}

func firstName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return fullName
	}
	return parts[0]
}
