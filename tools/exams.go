package tools

import (
	"context"
	"fmt"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

var examScheduleColumns = []string{
	"exam_id", "class_id", "subject_id", "date", "start_time", "end_time", "room_no",
}

func Exams() []registry.Command {
	return []registry.Command{
		{
			Name:        "add_exam",
			Description: "Create an exam",
			Fields: fields(
				reqStr("name", "Exam name, e.g. Mid Term 2026"),
				str("term", "Academic term the exam belongs to"),
				num("branch_id", "Branch holding the exam"),
			),
			Handler: ops.Insert("exams", []string{"name", "term", "branch_id"}),
		},
		{
			Name:        "list_exams",
			Description: "List exams",
			Fields: paged(
				num("branch_id", "Filter by branch"),
				str("name", "Filter by partial name match"),
			),
			Handler: ops.List("exams", []ops.Filter{
				{Field: "branch_id"},
				{Field: "name", Like: true},
			}, "id DESC"),
		},
		{
			Name:        "update_exam",
			Description: "Update an exam; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Exam id"),
				str("name", "Exam name"),
				str("term", "Academic term the exam belongs to"),
				num("branch_id", "Branch holding the exam"),
			),
			Handler: ops.Update("exams", []string{"name", "term", "branch_id"}),
		},
		{
			Name:        "delete_exam",
			Description: "Delete one exam by id",
			Fields:      fields(reqNum("id", "Exam id")),
			Handler:     ops.Delete("exams"),
		},
		{
			Name:        "add_exam_schedule",
			Description: "Schedule a subject paper within an exam",
			Fields: fields(
				reqNum("exam_id", "Exam the paper belongs to"),
				reqNum("class_id", "Class sitting the paper"),
				reqNum("subject_id", "Subject being examined"),
				reqStr("date", "Paper date (YYYY-MM-DD)"),
				str("start_time", "Start time (HH:MM)"),
				str("end_time", "End time (HH:MM)"),
				str("room_no", "Room the paper is held in"),
			),
			Handler: ops.Insert("exam_schedules", examScheduleColumns),
		},
		{
			Name:        "list_exam_schedules",
			Description: "List exam schedules",
			Fields: paged(
				num("exam_id", "Filter by exam"),
				num("class_id", "Filter by class"),
				str("date_from", "Only papers on or after this date"),
				str("date_to", "Only papers on or before this date"),
			),
			Handler: ops.List("exam_schedules", []ops.Filter{
				{Field: "exam_id"},
				{Field: "class_id"},
				{Field: "date_from", Column: "date", Op: ">="},
				{Field: "date_to", Column: "date", Op: "<="},
			}, "date ASC, start_time ASC, id ASC"),
		},
		{
			Name:        "update_exam_schedule",
			Description: "Update an exam schedule; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Schedule id"),
				num("exam_id", "Exam the paper belongs to"),
				num("class_id", "Class sitting the paper"),
				num("subject_id", "Subject being examined"),
				str("date", "Paper date (YYYY-MM-DD)"),
				str("start_time", "Start time (HH:MM)"),
				str("end_time", "End time (HH:MM)"),
				str("room_no", "Room the paper is held in"),
			),
			Handler: ops.Update("exam_schedules", examScheduleColumns),
		},
		{
			Name:        "delete_exam_schedule",
			Description: "Delete one exam schedule by id",
			Fields:      fields(reqNum("id", "Schedule id")),
			Handler:     ops.Delete("exam_schedules"),
		},
		{
			Name:        "record_mark",
			Description: "Record one student's mark for a subject in an exam",
			Fields: fields(
				reqNum("exam_id", "Exam the mark belongs to"),
				reqNum("student_id", "Student the mark belongs to"),
				reqNum("subject_id", "Subject the mark is for"),
				reqNum("mark", "Mark obtained"),
				str("grade", "Letter grade"),
			),
			Handler: ops.Insert("marks", []string{"exam_id", "student_id", "subject_id", "mark", "grade"}),
		},
		{
			Name: "record_marks_bulk",
			Description: "Record marks for several students in one exam and subject. Each mark is " +
				"a separate sequential insert with no rollback if a later one fails.",
			Fields: fields(
				reqNum("exam_id", "Exam the marks belong to"),
				reqNum("subject_id", "Subject the marks are for"),
				reqArr("items", "Marks to record, each {student_id, mark}"),
			),
			Handler: recordMarksBulk,
		},
		{
			Name:        "list_marks",
			Description: "List recorded marks",
			Fields: paged(
				num("exam_id", "Filter by exam"),
				num("student_id", "Filter by student"),
				num("subject_id", "Filter by subject"),
			),
			Handler: ops.List("marks", []ops.Filter{
				{Field: "exam_id"},
				{Field: "student_id"},
				{Field: "subject_id"},
			}, "exam_id ASC, subject_id ASC, student_id ASC"),
		},
		{
			Name:        "update_mark",
			Description: "Correct a recorded mark; only the supplied fields change",
			Fields: fields(
				reqNum("id", "Mark record id"),
				num("mark", "Mark obtained"),
				str("grade", "Letter grade"),
			),
			Handler: ops.Update("marks", []string{"mark", "grade"}),
		},
	}
}

func recordMarksBulk(ctx context.Context, exec proxy.Executor, args registry.Args) (any, error) {
	items, err := itemMaps(args, "items")
	if err != nil {
		return nil, err
	}

	type entry struct {
		studentID int
		mark      float64
	}
	entries := make([]entry, 0, len(items))
	for i, item := range items {
		studentID, err := itemNum("items", i, item, "student_id")
		if err != nil {
			return nil, err
		}
		mark, err := itemNum("items", i, item, "mark")
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{studentID: int(studentID), mark: mark})
	}

	examID := args.Int("exam_id")
	subjectID := args.Int("subject_id")

	var completed []string
	for i, e := range entries {
		_, err := exec.Execute(ctx,
			"INSERT INTO marks (exam_id, student_id, subject_id, mark) VALUES (?, ?, ?, ?)",
			[]any{examID, e.studentID, subjectID, e.mark})
		if err != nil {
			return nil, failBulk(completed, err)
		}
		completed = append(completed, fmt.Sprintf("mark %d", i+1))
	}

	return fmt.Sprintf("Recorded %d mark(s) for exam %d, subject %d.",
		len(items), examID, subjectID), nil
}
