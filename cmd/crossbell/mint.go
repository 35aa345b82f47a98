package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mintModuleData string

var mintCmd = &cobra.Command{
	Use:   "mint <profile-id> <note-id> <to>",
	Short: "Mint a copy of a note to a recipient",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, noteID, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		to, err := parseAddr(args[2])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		nft, tokenID, err := ledger.MintNote(c, profileID, noteID, to, mintModuleData)
		if err != nil {
			return err
		}
		fmt.Printf("Minted token %d of %s to %s\n", tokenID, nft, to)
		return nil
	},
}

var ownerOfCmd = &cobra.Command{
	Use:   "owner-of <nft-address> <token-id>",
	Short: "Print the holder of a minted token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nft, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		tokenID, err := parseID(args[1])
		if err != nil {
			return err
		}
		owner, err := ledger.OwnerOf(nft, tokenID)
		if err != nil {
			return err
		}
		fmt.Println(owner)
		return nil
	},
}

func init() {
	mintCmd.Flags().StringVar(&mintModuleData, "module-data", "", "data passed to the note's mint module")
	rootCmd.AddCommand(ownerOfCmd)
}
