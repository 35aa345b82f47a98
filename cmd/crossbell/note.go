// Note commands: post, get, set-uri, delete.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iavl/crossbell/pkg/types"
)

var (
	postContentURI     string
	postLinkModule     string
	postLinkModuleData string
	postMintModule     string
	postMintModuleData string

	// Link binding flags: at most one kind may be set.
	postLinkProfile  uint64
	postLinkAddress  string
	postLinkLinklist uint64
	postLinkContract string
	postLinkTokenID  uint64
	postLinkURI      string
	postLinkCategory string
)

var postCmd = &cobra.Command{
	Use:   "post <profile-id>",
	Short: "Post a note, optionally bound to an existing link",
	Args:  cobra.ExactArgs(1),
	RunE:  runPost,
}

func init() {
	postCmd.Flags().StringVar(&postContentURI, "uri", "", "content URI (required)")
	postCmd.Flags().StringVar(&postLinkModule, "link-module", "", "link module address")
	postCmd.Flags().StringVar(&postLinkModuleData, "link-module-data", "", "link module init data")
	postCmd.Flags().StringVar(&postMintModule, "mint-module", "", "mint module address")
	postCmd.Flags().StringVar(&postMintModuleData, "mint-module-data", "", "mint module init data")

	postCmd.Flags().Uint64Var(&postLinkProfile, "link-profile", 0, "bind to an existing profile link")
	postCmd.Flags().StringVar(&postLinkAddress, "link-address", "", "bind to an existing address link")
	postCmd.Flags().Uint64Var(&postLinkLinklist, "link-linklist", 0, "bind to an existing linklist link")
	postCmd.Flags().StringVar(&postLinkContract, "link-erc721", "", "bind to an existing external token link (contract)")
	postCmd.Flags().Uint64Var(&postLinkTokenID, "link-erc721-token", 0, "external token id for --link-erc721")
	postCmd.Flags().StringVar(&postLinkURI, "link-any", "", "bind to an existing URI link")
	postCmd.Flags().StringVar(&postLinkCategory, "link-category", "", "category of the bound link")

	noteCmd.AddCommand(noteGetCmd)
	noteCmd.AddCommand(noteSetURICmd)
	noteCmd.AddCommand(noteDeleteCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	profileID, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := callerAddr()
	if err != nil {
		return err
	}

	post := types.PostNoteData{
		ProfileID:      profileID,
		ContentURI:     postContentURI,
		LinkModule:     types.Address(postLinkModule),
		LinkModuleData: postLinkModuleData,
		MintModule:     types.Address(postMintModule),
		MintModuleData: postMintModuleData,
	}

	var noteID uint64
	switch {
	case postLinkProfile != 0:
		noteID, err = ledger.PostNote4ProfileLink(c, post, postLinkProfile, postLinkCategory)
	case postLinkAddress != "":
		noteID, err = ledger.PostNote4AddressLink(c, post, types.Address(postLinkAddress), postLinkCategory)
	case postLinkLinklist != 0:
		noteID, err = ledger.PostNote4LinklistLink(c, post, postLinkLinklist, postLinkCategory)
	case postLinkContract != "":
		noteID, err = ledger.PostNote4ERC721Link(c, post, types.Address(postLinkContract), postLinkTokenID, postLinkCategory)
	case postLinkURI != "":
		noteID, err = ledger.PostNote4AnyLink(c, post, postLinkURI, postLinkCategory)
	default:
		noteID, err = ledger.PostNote(c, post)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Posted note %d/%d\n", profileID, noteID)
	return nil
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Inspect and manage notes",
}

var noteGetCmd = &cobra.Command{
	Use:   "get <profile-id> <note-id>",
	Short: "Print a note record as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, noteID, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		note, err := ledger.GetNote(profileID, noteID)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(note, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling note: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

var noteSetURICmd = &cobra.Command{
	Use:   "set-uri <profile-id> <note-id> <uri>",
	Short: "Replace a note's content URI",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, noteID, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.SetNoteURI(c, profileID, noteID, args[2])
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <profile-id> <note-id>",
	Short: "Tombstone a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, noteID, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.DeleteNote(c, profileID, noteID)
	},
}
