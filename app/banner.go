// Copyright 2026 The Gantry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"
)

// colorWriter wraps w with the terminal's color profile. Production
// output strips ANSI sequences entirely.
func (a *App) colorWriter(w io.Writer) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if a.environment == EnvironmentProduction {
		cpw.Profile = colorprofile.NoTTY
	}
	return cpw
}

// printStartupBanner prints the startup banner. Called by [App.Run].
func (a *App) printStartupBanner(out io.Writer, addr string) {
	w := a.colorWriter(out)

	art := figure.NewFigure(a.name, "", false)
	artLines := art.Slicify()

	gradient := []string{"12", "14", "10", "11"}
	if a.environment != EnvironmentDevelopment {
		gradient = []string{"10", "11"}
	}

	var styledArt strings.Builder
	for _, line := range artLines {
		if strings.TrimSpace(line) == "" {
			styledArt.WriteString("\n")
			continue
		}
		for i, char := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(gradient[i%len(gradient)])).
				Bold(true)
			styledArt.WriteString(style.Render(string(char)))
		}
		styledArt.WriteString("\n")
	}

	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(14).PaddingLeft(2)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)

	displayAddr := addr
	if strings.HasPrefix(addr, ":") {
		displayAddr = "0.0.0.0" + addr
	}
	displayAddr = "http://" + displayAddr

	var info strings.Builder
	info.WriteString(categoryStyle.Render("Service") + "\n")
	info.WriteString(labelStyle.Render("Version:") + "  " + valueStyle.Foreground(lipgloss.Color("14")).Render(a.version) + "\n")
	info.WriteString(labelStyle.Render("Environment:") + "  " + valueStyle.Foreground(lipgloss.Color("11")).Render(a.environment) + "\n")
	info.WriteString(labelStyle.Render("Address:") + "  " + valueStyle.Foreground(lipgloss.Color("10")).Render(displayAddr) + "\n")

	if engines := a.Engines(); len(engines) > 0 {
		info.WriteString("\n" + categoryStyle.Render("Engines") + "\n")
		for _, e := range engines {
			mode := "shared"
			if e.Isolated() {
				mode = "isolated"
			}
			info.WriteString(labelStyle.Render(e.Name()+":") + "  " +
				valueStyle.Render(e.MountPrefix()) + "  " +
				lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Render("["+mode+"]") + "\n")
		}
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, styledArt.String())
	fmt.Fprintln(w)
	fmt.Fprint(w, info.String())

	if a.environment == EnvironmentDevelopment {
		if routes := a.router.Routes(); len(routes) > 0 {
			fmt.Fprintln(w)
			a.renderRoutesTable(w)
		}
	}
	fmt.Fprintln(w)
}

// renderRoutesTable renders the registered routes, engines' included since
// mounted routes keep their full templates.
func (a *App) renderRoutesTable(w io.Writer) {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cellStyle := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.PaddingLeft(1).PaddingRight(1)
			}
			return cellStyle
		}).
		Headers("Method", "Path", "Name")

	for _, route := range a.router.Routes() {
		t.Row(route.Method, route.Path, route.Name)
	}
	fmt.Fprintln(w, t.Render())
}

// PrintRoutes prints the route table to stdout.
func (a *App) PrintRoutes() {
	a.renderRoutesTable(a.colorWriter(os.Stdout))
}
