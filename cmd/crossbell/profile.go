// Profile commands for the crossbell CLI.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iavl/crossbell/pkg/types"
)

var (
	profileHandle string
	profileURI    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage profiles",
}

func init() {
	profileCreateCmd.Flags().StringVar(&profileHandle, "handle", "", "profile handle (required)")
	profileCreateCmd.Flags().StringVar(&profileURI, "uri", "", "profile metadata URI")

	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileOwnerCmd)
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a profile owned by the --as address",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := callerAddr()
		if err != nil {
			return err
		}
		profileID, err := ledger.CreateProfile(owner, profileHandle, profileURI)
		if err != nil {
			return err
		}
		fmt.Printf("Created profile %d\n", profileID)
		return nil
	},
}

var profileOwnerCmd = &cobra.Command{
	Use:   "owner <profile-id>",
	Short: "Print the owner of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, err := parseID(args[0])
		if err != nil {
			return err
		}
		owner, err := ledger.ProfileOwner(profileID)
		if err != nil {
			return err
		}
		fmt.Println(owner)
		return nil
	},
}

// parseID parses a decimal entity id argument.
func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// parseAddr validates a non-empty address argument.
func parseAddr(s string) (types.Address, error) {
	if s == "" {
		return types.AddressZero, fmt.Errorf("address must not be empty")
	}
	return types.Address(s), nil
}
