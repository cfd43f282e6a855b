package store

import "github.com/gbmsdev99/xclinic/internal/models"

// Admin queue actions and the statuses they are allowed from.
// Anything not listed is rejected so timestamp history stays ordered.
var transitionMap = map[string][]string{
	"arrive":   {models.StatusUpcoming},
	"start":    {models.StatusArrived},
	"complete": {models.StatusInConsultation},
	"cancel":   {models.StatusUpcoming, models.StatusArrived},
	"no_show":  {models.StatusUpcoming, models.StatusArrived, models.StatusInConsultation},
}

// TargetStatus maps an action to the status it produces.
var TargetStatus = map[string]string{
	"arrive":   models.StatusArrived,
	"start":    models.StatusInConsultation,
	"complete": models.StatusCompleted,
	"cancel":   models.StatusCancelled,
	"no_show":  models.StatusNoShow,
}

func ValidTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
