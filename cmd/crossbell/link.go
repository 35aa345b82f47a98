// Link and unlink commands, one subcommand per target kind.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linkModuleData string

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link a target from a profile",
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove a link from a profile",
}

func init() {
	linkCmd.PersistentFlags().StringVar(&linkModuleData, "module-data", "", "data passed to the category's link module")

	linkCmd.AddCommand(linkProfileCmd)
	linkCmd.AddCommand(linkAddressCmd)
	linkCmd.AddCommand(linkNoteCmd)
	linkCmd.AddCommand(linkERC721Cmd)
	linkCmd.AddCommand(linkLinklistCmd)
	linkCmd.AddCommand(linkAnyCmd)

	unlinkCmd.AddCommand(unlinkProfileCmd)
	unlinkCmd.AddCommand(unlinkAddressCmd)
	unlinkCmd.AddCommand(unlinkNoteCmd)
	unlinkCmd.AddCommand(unlinkERC721Cmd)
	unlinkCmd.AddCommand(unlinkLinklistCmd)
	unlinkCmd.AddCommand(unlinkAnyCmd)
}

var linkProfileCmd = &cobra.Command{
	Use:   "profile <from-profile> <to-profile> <category>",
	Short: "Link another profile",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.LinkProfile(c, from, to, args[2], linkModuleData)
	},
}

var unlinkProfileCmd = &cobra.Command{
	Use:   "profile <from-profile> <to-profile> <category>",
	Short: "Remove a profile link",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.UnlinkProfile(c, from, to, args[2])
	},
}

var linkAddressCmd = &cobra.Command{
	Use:   "address <from-profile> <address> <category>",
	Short: "Link a raw address",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseID(args[0])
		if err != nil {
			return err
		}
		addr, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.LinkAddress(c, from, addr, args[2], linkModuleData)
	},
}

var unlinkAddressCmd = &cobra.Command{
	Use:   "address <from-profile> <address> <category>",
	Short: "Remove an address link",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseID(args[0])
		if err != nil {
			return err
		}
		addr, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.UnlinkAddress(c, from, addr, args[2])
	},
}

var linkNoteCmd = &cobra.Command{
	Use:   "note <from-profile> <to-profile> <to-note> <category>",
	Short: "Link a note",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, toProfile, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		toNote, err := parseID(args[2])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.LinkNote(c, from, toProfile, toNote, args[3], linkModuleData)
	},
}

var unlinkNoteCmd = &cobra.Command{
	Use:   "note <from-profile> <to-profile> <to-note> <category>",
	Short: "Remove a note link",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, toProfile, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		toNote, err := parseID(args[2])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.UnlinkNote(c, from, toProfile, toNote, args[3])
	},
}

var linkERC721Cmd = &cobra.Command{
	Use:   "erc721 <from-profile> <contract> <token-id> <category>",
	Short: "Link an external token",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseID(args[0])
		if err != nil {
			return err
		}
		contract, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		tokenID, err := parseID(args[2])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.LinkERC721(c, from, contract, tokenID, args[3], linkModuleData)
	},
}

var unlinkERC721Cmd = &cobra.Command{
	Use:   "erc721 <from-profile> <contract> <token-id> <category>",
	Short: "Remove an external token link",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseID(args[0])
		if err != nil {
			return err
		}
		contract, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		tokenID, err := parseID(args[2])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.UnlinkERC721(c, from, contract, tokenID, args[3])
	},
}

var linkLinklistCmd = &cobra.Command{
	Use:   "linklist <from-profile> <linklist-id> <category>",
	Short: "Link another profile's linklist",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, linklistID, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.LinkLinklist(c, from, linklistID, args[2], linkModuleData)
	},
}

var unlinkLinklistCmd = &cobra.Command{
	Use:   "linklist <from-profile> <linklist-id> <category>",
	Short: "Remove a linklist link",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, linklistID, err := parseTwoIDs(args[0], args[1])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.UnlinkLinklist(c, from, linklistID, args[2])
	},
}

var linkAnyCmd = &cobra.Command{
	Use:   "any <from-profile> <uri> <category>",
	Short: "Link an opaque URI",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.LinkAny(c, from, args[1], args[2], linkModuleData)
	},
}

var unlinkAnyCmd = &cobra.Command{
	Use:   "any <from-profile> <uri> <category>",
	Short: "Remove a URI link",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := callerAddr()
		if err != nil {
			return err
		}
		return ledger.UnlinkAny(c, from, args[1], args[2])
	},
}

// parseTwoIDs parses two decimal id arguments.
func parseTwoIDs(a, b string) (uint64, uint64, error) {
	first, err := parseID(a)
	if err != nil {
		return 0, 0, err
	}
	second, err := parseID(b)
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

// linksCmd enumerates a profile's links under a category.
var linksCmd = &cobra.Command{
	Use:   "links <profile-id> <category>",
	Short: "List a profile's links under a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, err := parseID(args[0])
		if err != nil {
			return err
		}
		items, err := ledger.Links(profileID, args[1])
		if err != nil {
			return err
		}
		for _, item := range items {
			fmt.Println(item.Key())
		}
		return nil
	},
}
