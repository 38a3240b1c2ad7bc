package recyclebin

import (
	"fmt"
	"time"

	"estoquerapido/internal/model"
)

const day = 24 * time.Hour

// DaysRemaining reports the whole days until a DELETED entity becomes purge
// eligible: ceil((deletedAt + retention - now) / 1 day), clamped at zero for
// the today/overdue case.
func DaysRemaining(deletedAt time.Time, now time.Time, retention time.Duration) int {
	left := deletedAt.Add(retention).Sub(now.UTC())
	if left <= 0 {
		return 0
	}
	days := int(left / day)
	if left%day != 0 {
		days++
	}
	return days
}

// RetentionLabel is the message the recycle bin shows next to an entry.
func RetentionLabel(status model.Status, deletedAt time.Time, now time.Time, retention time.Duration) string {
	if status == model.StatusArchived {
		return "archived items are kept until you restore or delete them"
	}

	switch days := DaysRemaining(deletedAt, now, retention); days {
	case 0:
		return "will be removed by the next cleanup"
	case 1:
		return "1 day until permanent removal"
	default:
		return fmt.Sprintf("%d days until permanent removal", days)
	}
}
