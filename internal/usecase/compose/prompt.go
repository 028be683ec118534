package compose

// Instruction is sent as the first part of every request, ahead of the person photo
// and the garment image.
const Instruction = "Edit the FIRST image (the user image). " +
	"Replace only the clothing on the person in the FIRST image with the clothing shown in the SECOND image. " +
	"Use the SECOND image solely as a clothing reference (texture, color, pattern and fabric detail). " +
	"Do NOT copy or include the other person, face, body, or background from the SECOND image. " +
	"Preserve the FIRST image person's face, hair, skin tone, body shape, and pose exactly; only change the outfit. " +
	"Produce a photorealistic, full-body, head-to-toe vertical portrait (show the entire body). " +
	"Align and drape the clothing realistically to the user's body and pose. " +
	"Keep natural lighting consistent with the user's photo. " +
	"Output a single, photorealistic image of the user wearing the clothing. " +
	"Do not add watermarks, text, or extra people."
