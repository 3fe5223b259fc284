package identity

// Permission codes follow <module>:<action>.
const (
	PermissionRead   = "permission:read"
	PermissionCreate = "permission:create"
	PermissionDelete = "permission:delete"
	PermissionUpdate = "permission:update"

	UserPermissionRead   = "user_permission:read"
	UserPermissionCreate = "user_permission:create"
	UserPermissionDelete = "user_permission:delete"
	UserPermissionUpdate = "user_permission:update"

	RolePermissionRead   = "role_permission:read"
	RolePermissionCreate = "role_permission:create"
	RolePermissionDelete = "role_permission:delete"
	RolePermissionUpdate = "role_permission:update"

	RoleRead   = "role:read"
	RoleCreate = "role:create"
	RoleDelete = "role:delete"
	RoleUpdate = "role:update"

	UserRoleRead   = "user_role:read"
	UserRoleCreate = "user_role:create"
	UserRoleDelete = "user_role:delete"
	UserRoleUpdate = "user_role:update"

	UserRead   = "user:read"
	UserCreate = "user:create"
	UserDelete = "user:delete"
	UserUpdate = "user:update"

	FlashcardTypeRead   = "flashcard_type:read"
	FlashcardTypeCreate = "flashcard_type:create"
	FlashcardTypeDelete = "flashcard_type:delete"
	FlashcardTypeUpdate = "flashcard_type:update"

	FlashcardRead   = "flashcard:read"
	FlashcardCreate = "flashcard:create"
	FlashcardDelete = "flashcard:delete"
	FlashcardUpdate = "flashcard:update"

	FlashcardFileRead   = "flashcard_file:read"
	FlashcardFileCreate = "flashcard_file:create"
	FlashcardFileDelete = "flashcard_file:delete"
	FlashcardFileUpdate = "flashcard_file:update"

	MailTemplateRead   = "mail_template:read"
	MailTemplateCreate = "mail_template:create"
	MailTemplateDelete = "mail_template:delete"
	MailTemplateUpdate = "mail_template:update"
)
