package tools

import (
	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/registry"
)

var studentColumns = []string{
	"name", "mobile_no", "date", "email", "class_id", "section_id", "branch_id",
	"gender", "dob", "address", "guardian_name", "guardian_mobile",
}

func Students() []registry.Command {
	return []registry.Command{
		{
			Name:        "add_student",
			Description: "Register a new student",
			Fields: fields(
				reqStr("name", "Full name of the student"),
				reqStr("mobile_no", "Contact mobile number"),
				reqStr("date", "Admission date (YYYY-MM-DD)"),
				str("email", "Email address"),
				num("class_id", "Class the student is admitted to"),
				num("section_id", "Section within the class"),
				num("branch_id", "Branch the student belongs to"),
				str("gender", "Gender"),
				str("dob", "Date of birth (YYYY-MM-DD)"),
				str("address", "Home address"),
				str("guardian_name", "Guardian's full name"),
				str("guardian_mobile", "Guardian's mobile number"),
			),
			Handler: ops.Insert("students", studentColumns),
		},
		{
			Name:        "list_students",
			Description: "List students, optionally filtered by class, section, branch, or name",
			Fields: paged(
				num("class_id", "Filter by class"),
				num("section_id", "Filter by section"),
				num("branch_id", "Filter by branch"),
				str("name", "Filter by partial name match"),
				boolean("active", "Filter by active status"),
			),
			Handler: ops.List("students", []ops.Filter{
				{Field: "class_id"},
				{Field: "section_id"},
				{Field: "branch_id"},
				{Field: "name", Like: true},
				{Field: "active"},
			}, "id DESC"),
		},
		{
			Name:        "get_student",
			Description: "Fetch one student by id",
			Fields:      fields(reqNum("id", "Student id")),
			Handler:     ops.Get("students"),
		},
		{
			Name:        "update_student",
			Description: "Update a student; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Student id"),
				str("name", "Full name of the student"),
				str("mobile_no", "Contact mobile number"),
				str("date", "Admission date (YYYY-MM-DD)"),
				str("email", "Email address"),
				num("class_id", "Class the student is admitted to"),
				num("section_id", "Section within the class"),
				num("branch_id", "Branch the student belongs to"),
				str("gender", "Gender"),
				str("dob", "Date of birth (YYYY-MM-DD)"),
				str("address", "Home address"),
				str("guardian_name", "Guardian's full name"),
				str("guardian_mobile", "Guardian's mobile number"),
				boolean("active", "Whether the student is active"),
			),
			Handler: ops.Update("students", append(studentColumns, "active")),
		},
		{
			Name:        "delete_student",
			Description: "Delete one student by id",
			Fields:      fields(reqNum("id", "Student id")),
			Handler:     ops.Delete("students"),
		},
	}
}
