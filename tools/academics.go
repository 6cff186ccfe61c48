package tools

import (
	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/registry"
)

func Academics() []registry.Command {
	return []registry.Command{
		{
			Name:        "add_class",
			Description: "Create a class",
			Fields: fields(
				reqStr("name", "Class name, e.g. Grade 5"),
				num("branch_id", "Branch the class belongs to"),
			),
			Handler: ops.Insert("classes", []string{"name", "branch_id"}),
		},
		{
			Name:        "list_classes",
			Description: "List classes",
			Fields: paged(
				num("branch_id", "Filter by branch"),
				str("name", "Filter by partial name match"),
			),
			Handler: ops.List("classes", []ops.Filter{
				{Field: "branch_id"},
				{Field: "name", Like: true},
			}, "name ASC, id ASC"),
		},
		{
			Name:        "update_class",
			Description: "Update a class; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Class id"),
				str("name", "Class name"),
				num("branch_id", "Branch the class belongs to"),
			),
			Handler: ops.Update("classes", []string{"name", "branch_id"}),
		},
		{
			Name:        "delete_class",
			Description: "Delete one class by id",
			Fields:      fields(reqNum("id", "Class id")),
			Handler:     ops.Delete("classes"),
		},
		{
			Name:        "add_section",
			Description: "Create a section within a class",
			Fields: fields(
				reqStr("name", "Section name, e.g. A"),
				reqNum("class_id", "Class the section belongs to"),
			),
			Handler: ops.Insert("sections", []string{"name", "class_id"}),
		},
		{
			Name:        "list_sections",
			Description: "List sections",
			Fields: paged(
				num("class_id", "Filter by class"),
			),
			Handler: ops.List("sections", []ops.Filter{
				{Field: "class_id"},
			}, "class_id ASC, name ASC"),
		},
		{
			Name:        "update_section",
			Description: "Update a section; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Section id"),
				str("name", "Section name"),
				num("class_id", "Class the section belongs to"),
			),
			Handler: ops.Update("sections", []string{"name", "class_id"}),
		},
		{
			Name:        "delete_section",
			Description: "Delete one section by id",
			Fields:      fields(reqNum("id", "Section id")),
			Handler:     ops.Delete("sections"),
		},
		{
			Name:        "add_branch",
			Description: "Create a branch (school location)",
			Fields: fields(
				reqStr("name", "Branch name"),
				str("address", "Branch address"),
				str("mobile_no", "Branch contact number"),
			),
			Handler: ops.Insert("branches", []string{"name", "address", "mobile_no"}),
		},
		{
			Name:        "list_branches",
			Description: "List branches",
			Fields: paged(
				str("name", "Filter by partial name match"),
			),
			Handler: ops.List("branches", []ops.Filter{
				{Field: "name", Like: true},
			}, "id ASC"),
		},
		{
			Name:        "update_branch",
			Description: "Update a branch; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Branch id"),
				str("name", "Branch name"),
				str("address", "Branch address"),
				str("mobile_no", "Branch contact number"),
			),
			Handler: ops.Update("branches", []string{"name", "address", "mobile_no"}),
		},
	}
}
