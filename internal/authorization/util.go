// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

const (
	CONTRACTOR_RELATION    = "contractor"
	SUBCONTRACTOR_RELATION = "subcontractor"

	CAN_VIEW_DASHBOARD_PERMISSION        = "can_view_dashboard"
	CAN_INVITE_PERMISSION                = "can_invite"
	CAN_REVIEW_QUALIFICATIONS_PERMISSION = "can_review_qualifications"
	CAN_SUBMIT_QUALIFICATIONS_PERMISSION = "can_submit_qualifications"

	// DefaultPlatform is the single object permissions are checked against.
	DefaultPlatform = "default"
)

func UserTuple(userID string) string {
	return "user:" + userID
}

func PlatformTuple(platformID string) string {
	return "platform:" + platformID
}
