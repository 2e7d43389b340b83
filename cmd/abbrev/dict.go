package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) learnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn <text>...",
		Short: "Segment the text and store every unknown word in the dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := a.openDictionary()
			if err != nil {
				return err
			}
			defer dict.Close()

			learned, err := dict.LearnFromText(strings.Join(args, " "))
			for _, word := range learned {
				fmt.Fprintln(cmd.OutOrStdout(), word)
			}
			return err
		},
	}
}

func (a *app) segmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "segment <text>...",
		Short: "Segment the text with the learned dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := a.openDictionary()
			if err != nil {
				return err
			}
			defer dict.Close()

			words := dict.Segment(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(words, "/"))
			return nil
		},
	}
}
