package schema

import "github.com/shivam-singh-au17/assessment-sassy/internal/core/domain"

const (
	statusRule = "oneof=" + string(domain.TaskCompleted) + " " + string(domain.TaskNotCompleted)
	emailRule  = "email,domainsegments=2"
	passRule   = "min=8,max=20"
)

// Task is used by both task create and update.
var Task = Schema{
	Name: "task",
	Fields: []Field{
		{Name: "title", Type: String, Required: true},
		{Name: "description", Type: String, Required: true},
		{Name: "dueDate", Type: Date, Required: true},
		{Name: "status", Type: String, Rules: statusRule, Default: string(domain.TaskNotCompleted)},
	},
}

func listFields() []Field {
	return []Field{
		{Name: "page", Type: Number},
		{Name: "limit", Type: Number},
		{Name: "sortBy", Type: String},
		{Name: "sortOrder", Type: String, Rules: "oneof=ASC DESC"},
		{Name: "search", Type: String},
	}
}

var GetAllTasks = Schema{Name: "getAllTasks", Fields: listFields()}

var GetAllUsers = Schema{Name: "getAllUsers", Fields: listFields()}

var RegisterUser = Schema{
	Name: "registerUser",
	Fields: []Field{
		{Name: "username", Type: String, Required: true},
		{Name: "email", Type: String, Required: true, Rules: emailRule},
		{Name: "password", Type: String, Required: true, Rules: passRule},
	},
}

var LoginUser = Schema{
	Name: "loginUser",
	Fields: []Field{
		{Name: "email", Type: String, Required: true, Rules: emailRule},
		{Name: "password", Type: String, Required: true, Rules: passRule},
	},
}
