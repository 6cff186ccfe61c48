package tools

import (
	"context"
	"fmt"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

// settingsSections maps each section enum value to its fixed statement pair.
// The section name never reaches statement text: the closed map keeps
// caller-influenced strings out of SQL entirely.
var settingsSections = map[string]struct {
	read   string
	update string
}{
	"school":    {read: "SELECT name, value FROM school_settings ORDER BY name ASC", update: "UPDATE school_settings SET value = ? WHERE name = ?"},
	"fees":      {read: "SELECT name, value FROM fees_settings ORDER BY name ASC", update: "UPDATE fees_settings SET value = ? WHERE name = ?"},
	"exam":      {read: "SELECT name, value FROM exam_settings ORDER BY name ASC", update: "UPDATE exam_settings SET value = ? WHERE name = ?"},
	"inventory": {read: "SELECT name, value FROM inventory_settings ORDER BY name ASC", update: "UPDATE inventory_settings SET value = ? WHERE name = ?"},
	"hr":        {read: "SELECT name, value FROM hr_settings ORDER BY name ASC", update: "UPDATE hr_settings SET value = ? WHERE name = ?"},
}

func settingsSectionNames() []string {
	return []string{"school", "fees", "exam", "inventory", "hr"}
}

func Settings() []registry.Command {
	return []registry.Command{
		{
			Name:        "get_settings",
			Description: "Read all settings of one configuration section",
			Fields: fields(
				reqEnum("section", "Configuration section", settingsSectionNames()...),
			),
			Handler: getSettings,
		},
		{
			Name:        "update_settings",
			Description: "Set one named setting within a configuration section",
			Fields: fields(
				reqEnum("section", "Configuration section", settingsSectionNames()...),
				reqStr("name", "Setting name"),
				reqStr("value", "New value"),
			),
			Handler: updateSettings,
		},
	}
}

func getSettings(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	section := settingsSections[args.String("section")]
	res, err := exec.Execute(ctx, section.read, nil)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

func updateSettings(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	section := settingsSections[args.String("section")]
	name := args.String("name")

	res, err := exec.Execute(ctx, section.update, []any{args.String("value"), name})
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("setting %q in section %s: %w", name, args.String("section"), ops.ErrNotFound)
	}
	return fmt.Sprintf("Updated setting %q in section %s.", name, args.String("section")), nil
}
