// Package huggingface implements generation.Generator on top of the Hugging
// Face Inference API. The model is prompted for a JSON array of
// question/answer pairs which is extracted from the generated text.
package huggingface
