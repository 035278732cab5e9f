package api

// Request input shapes, one struct per operation that accepts a body.
// Handlers parse into these and run them through the validator before
// anything reaches the storage layer. Update inputs use pointers so a
// field left out of the request is distinguishable from a field set to
// its zero value.

// LoginInput is the body of auth.login.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateDownloadInput is the body of downloads.create. Status defaults
// to "working" when omitted.
type CreateDownloadInput struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	URL         string `json:"url" validate:"required,url"`
	Status      string `json:"status" validate:"omitempty,oneof=working downgrade_required down"`
}

// UpdateDownloadInput is the body of downloads.update. All fields are
// optional; only supplied fields are written.
type UpdateDownloadInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	URL         *string `json:"url" validate:"omitempty,url"`
	Status      *string `json:"status" validate:"omitempty,oneof=working downgrade_required down"`
}

// Fields returns the column assignments present in the input.
func (in UpdateDownloadInput) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.URL != nil {
		fields["url"] = *in.URL
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	return fields
}

// CreateVideoInput is the body of videos.create.
type CreateVideoInput struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	URL         string `json:"url" validate:"required,url"`
}

// UpdateVideoInput is the body of videos.update.
type UpdateVideoInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	URL         *string `json:"url" validate:"omitempty,url"`
}

// Fields returns the column assignments present in the input.
func (in UpdateVideoInput) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.URL != nil {
		fields["url"] = *in.URL
	}
	return fields
}

// UpdateSettingsInput is the body of settings.update. Partial: absent
// fields keep their stored values.
type UpdateSettingsInput struct {
	OldUIURL    *string `json:"oldUiUrl"`
	OldUIStatus *string `json:"oldUiStatus" validate:"omitempty,oneof=working downgrade_required down"`
	NewUIURL    *string `json:"newUiUrl"`
	NewUIStatus *string `json:"newUiStatus" validate:"omitempty,oneof=working downgrade_required down"`
}

// Fields returns the column assignments present in the input.
func (in UpdateSettingsInput) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.OldUIURL != nil {
		fields["old_ui_url"] = *in.OldUIURL
	}
	if in.OldUIStatus != nil {
		fields["old_ui_status"] = *in.OldUIStatus
	}
	if in.NewUIURL != nil {
		fields["new_ui_url"] = *in.NewUIURL
	}
	if in.NewUIStatus != nil {
		fields["new_ui_status"] = *in.NewUIStatus
	}
	return fields
}
