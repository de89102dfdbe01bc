// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.
// Command loom translates LLIR functions into structured TGT source.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"loom/internal/driver"
)

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "loom reconstructs structured control flow from LLIR",
	Long:  "loom translates a CFG-form LLIR module back into TGT source with if/else and loop control flow instead of branches and phis.",
}

var compileCmd = &cobra.Command{
	Use:   "compile <path>",
	Short: "translate an LLIR source file to TGT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fns, err := driver.Compile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), fns.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
