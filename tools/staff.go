package tools

import (
	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/registry"
)

var staffColumns = []string{
	"name", "mobile_no", "email", "department_id", "designation_id", "branch_id",
	"salary", "joining_date", "gender", "address",
}

func Staff() []registry.Command {
	return []registry.Command{
		{
			Name:        "add_staff",
			Description: "Register a new staff member",
			Fields: fields(
				reqStr("name", "Full name of the staff member"),
				reqStr("mobile_no", "Contact mobile number"),
				str("email", "Email address"),
				num("department_id", "Department the staff member belongs to"),
				num("designation_id", "Designation of the staff member"),
				num("branch_id", "Branch the staff member works at"),
				num("salary", "Monthly basic salary"),
				str("joining_date", "Joining date (YYYY-MM-DD)"),
				str("gender", "Gender"),
				str("address", "Home address"),
			),
			Handler: ops.Insert("staff", staffColumns),
		},
		{
			Name:        "list_staff",
			Description: "List staff members with optional filters",
			Fields: paged(
				num("department_id", "Filter by department"),
				num("designation_id", "Filter by designation"),
				num("branch_id", "Filter by branch"),
				str("name", "Filter by partial name match"),
			),
			Handler: ops.List("staff", []ops.Filter{
				{Field: "department_id"},
				{Field: "designation_id"},
				{Field: "branch_id"},
				{Field: "name", Like: true},
			}, "name ASC, id ASC"),
		},
		{
			Name:        "get_staff",
			Description: "Fetch one staff member by id",
			Fields:      fields(reqNum("id", "Staff id")),
			Handler:     ops.Get("staff"),
		},
		{
			Name:        "update_staff",
			Description: "Update a staff member; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Staff id"),
				str("name", "Full name of the staff member"),
				str("mobile_no", "Contact mobile number"),
				str("email", "Email address"),
				num("department_id", "Department the staff member belongs to"),
				num("designation_id", "Designation of the staff member"),
				num("branch_id", "Branch the staff member works at"),
				num("salary", "Monthly basic salary"),
				str("joining_date", "Joining date (YYYY-MM-DD)"),
				str("gender", "Gender"),
				str("address", "Home address"),
			),
			Handler: ops.Update("staff", staffColumns),
		},
		{
			Name:        "delete_staff",
			Description: "Delete one staff member by id",
			Fields:      fields(reqNum("id", "Staff id")),
			Handler:     ops.Delete("staff"),
		},
	}
}
