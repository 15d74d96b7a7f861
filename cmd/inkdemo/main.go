// Command inkdemo exercises the rendering pipeline end to end:
// reconcile an Element tree, lay it out, composite it, and drive it
// through a FrameDriver — the same round trip an external
// component-authoring layer would perform on every render.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zuozuo/ink"
)

func main() {
	root := &cobra.Command{
		Use:   "inkdemo",
		Short: "Exercise the ink rendering core end to end",
	}
	root.AddCommand(staticCmd(), nestedStyleCmd(), resizeCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// staticCmd builds a Root with a static log region (a Box marked
// static, grown by appending one child per tick) beside a live
// counter, and drives both through a single FrameDriver.Attach so the
// commit-hook dispatch in ResetAfterCommit (spec.md §4.E) routes log
// appends through OnImmediateRender and counter ticks through
// OnRender, matching spec.md §8 scenario 6.
func staticCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "static",
		Short: "Grow a static log region above a live counter",
		RunE: func(cmd *cobra.Command, args []string) error {
			driver := ink.Mount(os.Stdout)
			defer driver.Unmount()

			root := ink.CreateNode(ink.NodeKindRoot, "")
			log := ink.CreateNode(ink.NodeKindBox, "")
			ink.MarkStatic(log)
			dyn := ink.CreateNode(ink.NodeKindBox, "")
			if err := ink.AppendChild(root, log); err != nil {
				return err
			}
			if err := ink.AppendChild(root, dyn); err != nil {
				return err
			}
			driver.Attach(root)

			logCtx := ink.GetChildHostContext(ink.GetRootHostContext(), ink.NodeKindBox)

			var old *ink.Element
			for i := 1; i <= 5; i++ {
				// log is static, so each appended line goes straight
				// onto the real tree rather than through Reconcile's
				// single-managed-child model, which would replace
				// rather than accumulate (spec.md §5 append-order
				// guarantee).
				line := ink.CreateInstance(ink.NodeKindText, ink.Style{}, nil, logCtx)
				leaf, err := ink.CreateTextInstance(fmt.Sprintf("log line %d", i), ink.GetChildHostContext(logCtx, line.Kind))
				if err != nil {
					return err
				}
				if err := ink.AppendChild(line, leaf); err != nil {
					return err
				}
				if err := ink.AppendChild(log, line); err != nil {
					return err
				}

				next := counterElement(i)
				if _, err := ink.Reconcile(dyn, old, &next); err != nil {
					return err
				}
				old = &next

				ink.ResetAfterCommit(root, 40, 3)
				time.Sleep(40 * time.Millisecond)
			}
			return nil
		},
	}
}

func counterElement(n int) ink.Element {
	return ink.Element{
		Kind: ink.NodeKindBox,
		Style: ink.Style{
			Padding: ink.Some(ink.Uniform(1)),
			BorderTop: ink.Some(ink.BorderEdge{Kind: ink.BorderRound}),
			BorderRight: ink.Some(ink.BorderEdge{Kind: ink.BorderRound}),
			BorderBottom: ink.Some(ink.BorderEdge{Kind: ink.BorderRound}),
			BorderLeft: ink.Some(ink.BorderEdge{Kind: ink.BorderRound}),
		},
		Children: []ink.Element{
			{Kind: ink.NodeKindText, Children: []ink.Element{
				{Kind: ink.NodeKindTextLeaf, Text: fmt.Sprintf("count: %d", n)},
			}},
		},
	}
}

func nestedStyleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nested-style",
		Short: "Composite nested Text transforms innermost-first",
		RunE: func(cmd *cobra.Command, args []string) error {
			shout := func(line string, _ int) string { return line + "!" }
			bracket := func(line string, _ int) string { return "[" + line + "]" }

			inner := ink.Element{
				Kind:      ink.NodeKindText,
				Transform: shout,
				Children: []ink.Element{
					{Kind: ink.NodeKindTextLeaf, Text: "hello"},
				},
			}
			outer := ink.Element{
				Kind:      ink.NodeKindText,
				Transform: bracket,
				Children:  []ink.Element{inner},
			}

			container := ink.CreateNode(ink.NodeKindRoot, "")
			if _, err := ink.Reconcile(container, nil, &outer); err != nil {
				return err
			}
			ink.ComputeLayout(container, 20, 3)
			frame, _ := ink.Composite(container, false)
			fmt.Println(frame)
			return nil
		},
	}
}

func resizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize",
		Short: "Render once, then simulate a resize and re-render",
		RunE: func(cmd *cobra.Command, args []string) error {
			driver := ink.Mount(os.Stdout)
			defer driver.Unmount()

			el := counterElement(1)
			container := ink.CreateNode(ink.NodeKindRoot, "")
			if _, err := ink.Reconcile(container, nil, &el); err != nil {
				return err
			}

			width := ink.TerminalColumns(os.Stdout)
			ink.ComputeLayout(container, width, 3)
			frame, lines := ink.Composite(container, false)
			driver.Render(frame, lines)

			driver.Resize()
			ink.ComputeLayout(container, width, 3)
			frame, lines = ink.Composite(container, false)
			driver.Render(frame, lines)
			return nil
		},
	}
}
