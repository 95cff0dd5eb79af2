package messages

var builtinMessages = map[string]map[string]string{
	"en": {
		"rules.required":  "{label} is required",
		"rules.min":       "{label} must be at least {min}",
		"rules.max":       "{label} must be at most {max}",
		"rules.minLength": "{label} must be at least {minLength} characters",
		"rules.maxLength": "{label} must be at most {maxLength} characters",
		"rules.pattern":   "{label} has an invalid format",
		"rules.enum":      "{label} must be one of: {enum}",
		"rules.fileType":  "{label} must be a file of type: {fileType}",
		"rules.maxSize":   "{label} must not exceed {maxSize}",
		"rules.assert":    "{label} is invalid",
		"rules.isOneOf":   "{label} must reference a valid {target}",
		"rules.areManyOf": "{label} must be a list of valid {target} records",
		"rules.string":    "{label} must be text",
		"rules.text":      "{label} must be text",
		"rules.password":  "{label} must be text",
		"rules.tel":       "{label} must be a valid phone number",
		"rules.email":     "{label} must be a valid email address",
		"rules.url":       "{label} must be a valid URL",
		"rules.number":    "{label} must be a number",
		"rules.integer":   "{label} must be a whole number",
		"rules.float":     "{label} must be a number",
		"rules.file":      "{label} must be a file",
		"rules.timestamp": "{label} must be a timestamp",
		"rules.boolean":   "{label} must be true or false",
		"rules.object":    "{label} must be an object",
		"rules.relation":  "{label} must reference a valid record",
	},
	"es": {
		"rules.required":  "{label} es obligatorio",
		"rules.min":       "{label} debe ser como mínimo {min}",
		"rules.max":       "{label} debe ser como máximo {max}",
		"rules.minLength": "{label} debe tener al menos {minLength} caracteres",
		"rules.maxLength": "{label} debe tener como máximo {maxLength} caracteres",
		"rules.pattern":   "{label} tiene un formato no válido",
		"rules.enum":      "{label} debe ser uno de: {enum}",
		"rules.fileType":  "{label} debe ser un archivo de tipo: {fileType}",
		"rules.maxSize":   "{label} no debe superar {maxSize}",
		"rules.assert":    "{label} no es válido",
		"rules.isOneOf":   "{label} debe hacer referencia a un {target} válido",
		"rules.areManyOf": "{label} debe ser una lista de registros {target} válidos",
		"rules.string":    "{label} debe ser texto",
		"rules.text":      "{label} debe ser texto",
		"rules.password":  "{label} debe ser texto",
		"rules.tel":       "{label} debe ser un teléfono válido",
		"rules.email":     "{label} debe ser un correo electrónico válido",
		"rules.url":       "{label} debe ser una URL válida",
		"rules.number":    "{label} debe ser un número",
		"rules.integer":   "{label} debe ser un número entero",
		"rules.float":     "{label} debe ser un número",
		"rules.file":      "{label} debe ser un archivo",
		"rules.timestamp": "{label} debe ser una marca de tiempo",
		"rules.boolean":   "{label} debe ser verdadero o falso",
		"rules.object":    "{label} debe ser un objeto",
		"rules.relation":  "{label} debe hacer referencia a un registro válido",
	},
}
