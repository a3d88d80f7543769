package web

import (
	"fmt"

	vm "github.com/ericfisherdev/trainerpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/trainerpanel/internal/application"
	"github.com/ericfisherdev/trainerpanel/internal/domain/model"
)

// toEntityRowViewModels converts records to table rows, one per record in
// input order. It is a pure function of its input.
func toEntityRowViewModels(records []model.Entity) []vm.EntityRowViewModel {
	rows := make([]vm.EntityRowViewModel, 0, len(records))
	for _, e := range records {
		rows = append(rows, vm.EntityRowViewModel{
			ID:         e.ID,
			Name:       e.Name,
			Contact:    e.Contact,
			EditPath:   fmt.Sprintf("/entities/%d/edit", e.ID),
			DeletePath: fmt.Sprintf("/entities/%d/delete", e.ID),
		})
	}
	return rows
}

// toAlertViewModel converts application feedback to an alert.
func toAlertViewModel(fb application.Feedback) vm.AlertViewModel {
	return vm.AlertViewModel{Message: fb.Message, IsError: fb.Failed}
}

// toDeletePromptViewModel builds the overlay for a pending deletion. name may
// be empty when the record is no longer cached.
func toDeletePromptViewModel(id int64, name string) *vm.DeletePromptViewModel {
	return &vm.DeletePromptViewModel{
		ID:         id,
		Name:       name,
		ConfirmURL: "/entities/delete/confirm",
		CancelURL:  "/entities/delete/cancel",
	}
}
