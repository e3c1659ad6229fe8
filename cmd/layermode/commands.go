package main

import (
	"fmt"
	"image"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gogpu/layermode"
)

func newModesCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List layer modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := layermode.Modes()
			if group != "" {
				g, err := layermode.ParseGroup(group)
				if err != nil {
					return err
				}
				modes = layermode.GroupModes(g)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range modes {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", int(m), m, m.Label(), layermode.OperationName(m))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "Only list the modes of a group")
	return cmd
}

func newGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List mode groups",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, g := range layermode.Groups() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d modes\n", g, g.Label(), len(layermode.GroupModes(g)))
			}
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <mode>",
		Short: "Describe a layer mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := layermode.ParseMode(args[0])
			if err != nil {
				return err
			}
			in, _ := layermode.Lookup(m)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "mode\t%s (%d)\n", m, int(m))
			fmt.Fprintf(w, "label\t%s\n", m.Label())
			fmt.Fprintf(w, "operation\t%s\n", in.OperationName)
			fmt.Fprintf(w, "kind\t%s\n", in.Kind)
			fmt.Fprintf(w, "group\t%s\n", layermode.GroupOf(m))
			fmt.Fprintf(w, "legacy\t%t\n", layermode.IsLegacy(m))
			fmt.Fprintf(w, "wants linear\t%t\n", layermode.WantsLinearData(m))
			fmt.Fprintf(w, "blend space\t%s%s\n", in.BlendSpace, lock(layermode.IsBlendSpaceMutable(m)))
			fmt.Fprintf(w, "composite space\t%s%s\n", in.CompositeSpace, lock(layermode.IsCompositeSpaceMutable(m)))
			fmt.Fprintf(w, "composite mode\t%s%s\n", in.CompositeMode, lock(layermode.IsCompositeModeMutable(m)))
			fmt.Fprintf(w, "paint composite mode\t%s\n", in.PaintCompositeMode)
			return w.Flush()
		},
	}
}

func lock(mutable bool) string {
	if mutable {
		return ""
	}
	return " (fixed)"
}

func newTranslateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <mode> <group>",
		Short: "Find the equivalent of a mode in another group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := layermode.ParseMode(args[0])
			if err != nil {
				return err
			}
			g, err := layermode.ParseGroup(args[1])
			if err != nil {
				return err
			}
			out, ok := layermode.ForGroup(m, g)
			if !ok {
				return errors.Errorf("%s has no equivalent in the %s group", m, g)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newBlendCmd() *cobra.Command {
	var (
		mode    string
		bg, fg  string
		opacity float32
	)
	cmd := &cobra.Command{
		Use:   "blend",
		Short: "Composite one linear-light colour onto another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := layermode.ParseMode(mode)
			if err != nil {
				return err
			}
			bgPix, err := parsePixel(bg)
			if err != nil {
				return errors.Wrap(err, "--bg")
			}
			fgPix, err := parsePixel(fg)
			if err != nil {
				return errors.Wrap(err, "--fg")
			}

			out, err := blendPixel(m, bgPix, fgPix, opacity)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatPixel(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "normal", "Layer mode")
	cmd.Flags().StringVar(&bg, "bg", "0,0,0,1", "Backdrop colour as r,g,b[,a]")
	cmd.Flags().StringVar(&fg, "fg", "1,1,1,1", "Layer colour as r,g,b[,a]")
	cmd.Flags().Float32VarP(&opacity, "opacity", "o", 1, "Layer opacity")
	return cmd
}

// blendPixel composites a single-pixel layer through the Compositor, so
// the colours take the same space conversions as full images.
func blendPixel(m layermode.Mode, bg, fg layermode.Pixel, opacity float32) (layermode.Pixel, error) {
	r := image.Rect(0, 0, 1, 1)
	dst, err := layermode.NewBuffer(r)
	if err != nil {
		return layermode.Pixel{}, err
	}
	src, err := layermode.NewBuffer(r)
	if err != nil {
		return layermode.Pixel{}, err
	}
	dst.Set(0, 0, bg)
	src.Set(0, 0, fg)

	layer := layermode.NewLayer("blend", src, m)
	layer.SetOpacity(opacity)

	c := layermode.NewCompositor(layermode.WithWorkers(1))
	defer c.Close()
	if err := c.Composite(dst, layer); err != nil {
		return layermode.Pixel{}, err
	}
	return dst.At(0, 0), nil
}

func parsePixel(s string) (layermode.Pixel, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return layermode.Pixel{}, errors.Errorf("colour %q: want 3 or 4 components", s)
	}
	p := layermode.Pixel{0, 0, 0, 1}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return layermode.Pixel{}, errors.Wrapf(err, "colour %q", s)
		}
		p[i] = float32(v)
	}
	return p, nil
}

func formatPixel(p layermode.Pixel) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.FormatFloat(float64(v), 'f', 4, 32)
	}
	return strings.Join(parts, ",")
}
